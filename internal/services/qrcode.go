package services

import (
	"encoding/base64"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders the confirmation QR code of an order.
type QRGenerator struct {
	BaseURL string
	Size    int
}

func NewQRGenerator(baseURL string) QRGenerator {
	return QRGenerator{BaseURL: baseURL, Size: 256}
}

// OrderURL is the public confirmation page of an order.
func (g QRGenerator) OrderURL(orderNumber string) string {
	return g.BaseURL + "/orders/" + url.PathEscape(orderNumber)
}

// PNG encodes OrderURL as a QR code image.
func (g QRGenerator) PNG(orderNumber string) ([]byte, error) {
	return qrcode.Encode(g.OrderURL(orderNumber), qrcode.Medium, g.Size)
}

// DataURL returns the PNG as a data: URL suitable for an <img> src.
func (g QRGenerator) DataURL(orderNumber string) (string, error) {
	png, err := g.PNG(orderNumber)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
