package shopify

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopsync/backend/internal/domain/commerce"
)

// Adapters from the two transport shapes (GraphQL nodes, webhook bodies) into
// the canonical commerce records. The reconciler never sees transport types.

// extractNumericID pulls the trailing numeric id out of a composite id like
// gid://shopify/Order/123456. Plain numeric strings pass through unchanged.
func extractNumericID(gid string) (int64, error) {
	s := gid
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid composite id %q: %w", gid, err)
	}
	return id, nil
}

func parseNodeTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func customerRecordFromNode(n customerNode) (commerce.CustomerRecord, error) {
	id, err := extractNumericID(n.ID)
	if err != nil {
		return commerce.CustomerRecord{}, err
	}
	rec := commerce.CustomerRecord{
		ExternalID: id,
		Email:      n.Email,
		FirstName:  n.FirstName,
		LastName:   n.LastName,
	}
	if n.AmountSpent != nil {
		rec.TotalSpent = n.AmountSpent.Amount
		rec.Currency = n.AmountSpent.CurrencyCode
	}
	return rec, nil
}

func productRecordFromNode(n productNode) (commerce.ProductRecord, error) {
	id, err := extractNumericID(n.ID)
	if err != nil {
		return commerce.ProductRecord{}, err
	}
	return commerce.ProductRecord{
		ExternalID:  id,
		Title:       n.Title,
		Vendor:      n.Vendor,
		ProductType: n.ProductType,
		// GraphQL reports enum statuses in uppercase, webhooks in lowercase;
		// the canonical form is lowercase.
		Status: strings.ToLower(n.Status),
	}, nil
}

func orderRecordFromNode(n orderNode) (commerce.OrderRecord, error) {
	id, err := extractNumericID(n.ID)
	if err != nil {
		return commerce.OrderRecord{}, err
	}

	rec := commerce.OrderRecord{
		ExternalID:        id,
		Name:              n.Name,
		Email:             n.Email,
		Status:            "open",
		FinancialStatus:   strings.ToLower(n.DisplayFinancialStatus),
		FulfillmentStatus: strings.ToLower(n.DisplayFulfillmentStatus),
		SubtotalPrice:     n.SubtotalPriceSet.ShopMoney.Amount,
		TotalPrice:        n.TotalPriceSet.ShopMoney.Amount,
		TotalTax:          n.TotalTaxSet.ShopMoney.Amount,
		Currency:          n.TotalPriceSet.ShopMoney.CurrencyCode,
		ProcessedAt:       parseNodeTime(n.ProcessedAt),
		CancelledAt:       parseNodeTime(n.CancelledAt),
	}
	if rec.CancelledAt != nil {
		rec.Status = "cancelled"
	}

	if n.Customer != nil {
		customer, err := customerRecordFromNode(*n.Customer)
		if err != nil {
			return commerce.OrderRecord{}, err
		}
		rec.Customer = &customer
	}

	for _, edge := range n.LineItems.Edges {
		li, err := lineItemRecordFromNode(edge.Node)
		if err != nil {
			return commerce.OrderRecord{}, err
		}
		rec.LineItems = append(rec.LineItems, li)
	}
	return rec, nil
}

func lineItemRecordFromNode(n lineItemNode) (commerce.LineItemRecord, error) {
	id, err := extractNumericID(n.ID)
	if err != nil {
		return commerce.LineItemRecord{}, err
	}
	rec := commerce.LineItemRecord{
		ExternalID: id,
		Title:      n.Title,
		SKU:        n.SKU,
		Quantity:   n.Quantity,
		UnitPrice:  n.OriginalUnitPriceSet.ShopMoney.Amount,
	}
	if n.Product != nil {
		if pid, err := extractNumericID(n.Product.ID); err == nil {
			rec.ProductExternalID = &pid
		}
	}
	if n.Variant != nil {
		if vid, err := extractNumericID(n.Variant.ID); err == nil {
			rec.VariantExternalID = &vid
		}
	}
	return rec, nil
}

// ParseCustomerWebhook maps a customers/* webhook body to a canonical record
func ParseCustomerWebhook(body []byte) (commerce.CustomerRecord, error) {
	var payload webhookCustomer
	if err := json.Unmarshal(body, &payload); err != nil {
		return commerce.CustomerRecord{}, fmt.Errorf("invalid customer payload: %w", err)
	}
	return commerce.CustomerRecord{
		ExternalID: payload.ID,
		Email:      payload.Email,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		TotalSpent: payload.TotalSpent,
		Currency:   payload.Currency,
	}, nil
}

// ParseProductWebhook maps a products/* webhook body to a canonical record
func ParseProductWebhook(body []byte) (commerce.ProductRecord, error) {
	var payload webhookProduct
	if err := json.Unmarshal(body, &payload); err != nil {
		return commerce.ProductRecord{}, fmt.Errorf("invalid product payload: %w", err)
	}
	return commerce.ProductRecord{
		ExternalID:  payload.ID,
		Title:       payload.Title,
		Vendor:      payload.Vendor,
		ProductType: payload.ProductType,
		Status:      payload.Status,
	}, nil
}

// ParseOrderWebhook maps an orders/* webhook body to a canonical record,
// including the embedded customer and line items.
func ParseOrderWebhook(body []byte) (commerce.OrderRecord, error) {
	var payload webhookOrder
	if err := json.Unmarshal(body, &payload); err != nil {
		return commerce.OrderRecord{}, fmt.Errorf("invalid order payload: %w", err)
	}

	rec := commerce.OrderRecord{
		ExternalID:        payload.ID,
		Name:              payload.Name,
		Email:             payload.Email,
		Status:            payload.Status,
		FinancialStatus:   payload.FinancialStatus,
		FulfillmentStatus: payload.FulfillmentStatus,
		SubtotalPrice:     payload.SubtotalPrice,
		TotalPrice:        payload.TotalPrice,
		TotalTax:          payload.TotalTax,
		Currency:          payload.Currency,
		ProcessedAt:       parseNodeTime(payload.ProcessedAt),
		CancelledAt:       parseNodeTime(payload.CancelledAt),
	}
	if rec.Status == "" {
		rec.Status = "open"
	}

	if payload.Customer != nil {
		rec.Customer = &commerce.CustomerRecord{
			ExternalID: payload.Customer.ID,
			Email:      payload.Customer.Email,
			FirstName:  payload.Customer.FirstName,
			LastName:   payload.Customer.LastName,
			TotalSpent: payload.Customer.TotalSpent,
			Currency:   payload.Customer.Currency,
		}
	}

	for _, item := range payload.LineItems {
		rec.LineItems = append(rec.LineItems, commerce.LineItemRecord{
			ExternalID:        item.ID,
			ProductExternalID: item.ProductID,
			VariantExternalID: item.VariantID,
			Title:             item.Title,
			SKU:               item.SKU,
			Quantity:          item.Quantity,
			UnitPrice:         item.Price,
		})
	}
	return rec, nil
}
