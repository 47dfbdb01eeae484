package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"leo-chat/internal/domain/message"
	"leo-chat/internal/events"
	chat_errors "leo-chat/pkg/errors"
	"leo-chat/pkg/logger"

	"go.uber.org/zap"
)

const (
	OrderNotificationExchange = "order-notification"
	OrderEmailRoutingKey      = "order-email"
	OfferTemplate             = "offer"

	offerPublishDescription = "Order email sent to notification service"
)

// OfferNotification is the payload the notification service renders into an offer email.
type OfferNotification struct {
	Sender         string `json:"sender"`
	Amount         string `json:"amount"`
	BuyerUsername  string `json:"buyerUsername"`
	SellerUsername string `json:"sellerUsername"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	DeliveryDays   string `json:"deliveryDays"`
	Template       string `json:"template"`
}

// NewOfferNotification builds the payload for m. The sender is the seller making the offer.
func NewOfferNotification(m message.Message) OfferNotification {
	return OfferNotification{
		Sender:         m.SenderUsername,
		Amount:         m.Offer.Price.String(),
		BuyerUsername:  strings.ToLower(m.ReceiverUsername),
		SellerUsername: strings.ToLower(m.SenderUsername),
		Title:          m.Offer.GigTitle,
		Description:    m.Offer.Description,
		DeliveryDays:   strconv.Itoa(m.Offer.DeliveryInDays),
		Template:       OfferTemplate,
	}
}

// OfferNotifier publishes offer notifications in the background. Publish failures
// go to a failure channel drained by the loop started with Start.
type OfferNotifier struct {
	publisher events.QueuePublisher
	logger    *logger.Logger
	timeout   time.Duration
	failures  chan error
	stopChan  chan struct{}
	inflight  sync.WaitGroup
	drain     sync.WaitGroup
	stopOnce  sync.Once
}

func NewOfferNotifier(publisher events.QueuePublisher, l *logger.Logger, timeout time.Duration) *OfferNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OfferNotifier{
		publisher: publisher,
		logger:    l,
		timeout:   timeout,
		failures:  make(chan error, 64),
		stopChan:  make(chan struct{}),
	}
}

// Notify returns immediately; the publish runs on its own goroutine and outlives ctx.
func (n *OfferNotifier) Notify(ctx context.Context, m message.Message) {
	if !m.HasOffer {
		return
	}
	payload, err := json.Marshal(NewOfferNotification(m))
	if err != nil {
		n.report(fmt.Errorf("offer notification for message %s: %w", m.ID, err))
		return
	}

	detached := context.WithoutCancel(ctx)
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		pctx, cancel := context.WithTimeout(detached, n.timeout)
		defer cancel()

		err := n.publisher.Publish(pctx, OrderNotificationExchange, OrderEmailRoutingKey, string(payload), offerPublishDescription)
		if err != nil {
			n.report(fmt.Errorf("offer notification for message %s: %w", m.ID, err))
			return
		}
		n.logger.WithContext(detached).Debug(offerPublishDescription, zap.String("message_id", m.ID.String()))
	}()
}

// Failures exposes publish failures that have not been drained yet.
func (n *OfferNotifier) Failures() <-chan error {
	return n.failures
}

func (n *OfferNotifier) report(err error) {
	err = chat_errors.Notification(err)
	select {
	case n.failures <- err:
	default:
		n.logger.Errorf("notification failure queue full, dropping: %v", err)
	}
}

// Start launches the loop that logs publish failures.
func (n *OfferNotifier) Start() {
	n.drain.Add(1)
	go func() {
		defer n.drain.Done()
		for {
			select {
			case <-n.stopChan:
				return
			case err := <-n.failures:
				n.logger.Errorf("offer notification failed: %v", err)
			}
		}
	}()
}

// Stop waits for in-flight publishes and then stops the failure loop.
func (n *OfferNotifier) Stop() {
	n.inflight.Wait()
	n.stopOnce.Do(func() { close(n.stopChan) })
	n.drain.Wait()
	for {
		select {
		case err := <-n.failures:
			n.logger.Errorf("offer notification failed: %v", err)
		default:
			return
		}
	}
}

// Wait blocks until every publish started so far has finished.
func (n *OfferNotifier) Wait() {
	n.inflight.Wait()
}
