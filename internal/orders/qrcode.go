package orders

import (
	"errors"
	"net/url"

	"github.com/skip2/go-qrcode"

	"aavkar_pos/internal/models"
)

const DefaultQRSize = 256

var ErrNoTrackingLink = errors.New("order has no tracking link")

// TrackingLink is the courier link when one was recorded, else the
// storefront tracking page for the order.
func TrackingLink(o models.Order, baseURL string) (string, error) {
	if s := TrackingSummary(o); s != nil && s.TrackingLink != "" {
		return s.TrackingLink, nil
	}
	if baseURL == "" || o.ID == "" {
		return "", ErrNoTrackingLink
	}
	return baseURL + "/" + url.PathEscape(o.ID), nil
}

// TrackingQR renders the tracking link as a PNG for the receipt printer.
func TrackingQR(o models.Order, baseURL string, size int) ([]byte, error) {
	link, err := TrackingLink(o, baseURL)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}
