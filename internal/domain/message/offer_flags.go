package message

import "strings"

// OfferFlag names one of the one-way offer lifecycle flags.
type OfferFlag string

const (
	OfferAccepted  OfferFlag = "accepted"
	OfferDeclined  OfferFlag = "declined"
	OfferCancelled OfferFlag = "cancelled"
	OfferDelivered OfferFlag = "delivered"
	OfferExtended  OfferFlag = "extended"
)

var offerFlagColumns = map[OfferFlag]string{
	OfferAccepted:  "offer_accepted",
	OfferDeclined:  "offer_declined",
	OfferCancelled: "offer_cancelled",
	OfferDelivered: "offer_delivered",
	OfferExtended:  "offer_extended",
}

// ParseOfferFlag accepts a flag name in any case.
func ParseOfferFlag(name string) (OfferFlag, bool) {
	flag := OfferFlag(strings.ToLower(strings.TrimSpace(name)))
	_, ok := offerFlagColumns[flag]
	return flag, ok
}

// Column returns the storage column backing the flag, or "" for unknown flags.
func (f OfferFlag) Column() string {
	return offerFlagColumns[f]
}

// IsSet reports whether the flag is already true on o.
func (o Offer) IsSet(f OfferFlag) bool {
	switch f {
	case OfferAccepted:
		return o.Accepted
	case OfferDeclined:
		return o.Declined
	case OfferCancelled:
		return o.Cancelled
	case OfferDelivered:
		return o.Delivered
	case OfferExtended:
		return o.Extended
	}
	return false
}
