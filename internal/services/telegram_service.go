package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/utils"
)

// Notifier delivers back-office alerts.
type Notifier interface {
	NotifyNewOrder(order OrderNotification) error
	NotifyNewReservation(reservation ReservationNotification) error
}

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
	currency    string
	locale      utils.Locale
	apiBase     string
	client      *http.Client
	log         *logrus.Entry
}

// NewTelegramService creates a new TelegramService. Messages name dishes in
// locale and format prices in currency.
func NewTelegramService(botToken, adminChatID, currency string, locale utils.Locale) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		currency:    currency,
		locale:      locale,
		apiBase:     "https://api.telegram.org",
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         logging.For("telegram"),
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		s.log.Debug("bot token not configured")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		s.log.WithError(err).Warn("failed to send message")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.WithField("status", resp.StatusCode).Warn("unexpected status")
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		s.log.Debug("admin chat id not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// OrderNotification contains order data for Telegram notification. Amounts
// are minor units.
type OrderNotification struct {
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	Address       string
	Notes         string
	Items         []OrderItemNotification
	Subtotal      int64
	Discount      int64
	DeliveryFee   int64
	Total         int64
	PaymentMethod string
	CouponCode    string
}

// OrderItemNotification contains order item data. Names are the three
// locale variants of the dish name.
type OrderItemNotification struct {
	NameAr   string
	NameEn   string
	NameFr   string
	Quantity int
	Price    int64
	Total    int64
	Notes    string
}

// NotifyNewOrder sends notification about new order to admin chat.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	var itemsList strings.Builder
	for i, item := range order.Items {
		name := utils.Pick(s.locale, item.NameAr, item.NameEn, item.NameFr)
		if name == "" {
			name = "#?"
		}
		itemsList.WriteString(fmt.Sprintf("%d. <b>%s</b>\n   %d x %s = %s\n",
			i+1,
			html.EscapeString(name),
			item.Quantity,
			utils.FormatPrice(item.Price, s.currency),
			utils.FormatPrice(item.Total, s.currency),
		))
		if item.Notes != "" {
			itemsList.WriteString("   <i>" + html.EscapeString(item.Notes) + "</i>\n")
		}
	}

	paymentMethodText := "Cash"
	if order.PaymentMethod == "card" {
		paymentMethodText = "Card"
	}

	message := fmt.Sprintf(`<b>🛒 NEW ORDER</b>
<b>📋 Order:</b> %s
<b>👤 Customer:</b> %s
<b>📞 Phone:</b> %s
<b>📍 Address:</b> %s
<b>📦 Items:</b>
%s
<b>Subtotal:</b> %s
<b>Delivery:</b> %s
<b>💰 Total:</b> %s
<b>💳 Payment:</b> %s`,
		order.OrderNumber,
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.CustomerPhone),
		html.EscapeString(order.Address),
		itemsList.String(),
		utils.FormatPrice(order.Subtotal, s.currency),
		utils.FormatPrice(order.DeliveryFee, s.currency),
		utils.FormatPrice(order.Total, s.currency),
		paymentMethodText,
	)
	if order.CouponCode != "" {
		message += "\n<b>🏷 Coupon:</b> " + html.EscapeString(order.CouponCode)
		if order.Discount > 0 {
			message += " (-" + utils.FormatPrice(order.Discount, s.currency) + ")"
		}
	}
	if order.Notes != "" {
		message += "\n<b>📝 Notes:</b> " + html.EscapeString(order.Notes)
	}
	message += "\n━━━━━━━━━━━━━━━━━━"

	return s.SendToAdmin(strings.TrimSpace(message))
}

// ReservationNotification contains table reservation data.
type ReservationNotification struct {
	CustomerName   string
	CustomerPhone  string
	NumberOfGuests int
	Date           time.Time
	Notes          string
}

// NotifyNewReservation sends notification about a table reservation.
func (s *TelegramService) NotifyNewReservation(r ReservationNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	message := fmt.Sprintf(`<b>🍽 NEW RESERVATION</b>
<b>👤 Customer:</b> %s
<b>📞 Phone:</b> %s
<b>👥 Guests:</b> %d
<b>🕖 When:</b> %s`,
		html.EscapeString(r.CustomerName),
		html.EscapeString(r.CustomerPhone),
		r.NumberOfGuests,
		r.Date.Format("2006-01-02 15:04"),
	)
	if r.Notes != "" {
		message += "\n<b>📝 Notes:</b> " + html.EscapeString(r.Notes)
	}
	message += "\n━━━━━━━━━━━━━━━━━━"

	return s.SendToAdmin(message)
}
