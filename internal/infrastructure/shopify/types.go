package shopify

// GraphQL response shapes. Only the fields the adapters consume are declared;
// composite ids arrive as gid://shopify/{Type}/{numericID} strings.

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type moneySet struct {
	ShopMoney money `json:"shopMoney"`
}

type productNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"productType"`
	Status      string `json:"status"`
}

type productsConnection struct {
	Edges []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
	PageInfo pageInfo `json:"pageInfo"`
}

type productsData struct {
	Products productsConnection `json:"products"`
}

type customerNode struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AmountSpent *money `json:"amountSpent"`
}

type idNode struct {
	ID string `json:"id"`
}

type lineItemNode struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	SKU                  string   `json:"sku"`
	Quantity             int      `json:"quantity"`
	OriginalUnitPriceSet moneySet `json:"originalUnitPriceSet"`
	Product              *idNode  `json:"product"`
	Variant              *idNode  `json:"variant"`
}

type orderNode struct {
	ID                       string        `json:"id"`
	Name                     string        `json:"name"`
	Email                    string        `json:"email"`
	ProcessedAt              string        `json:"processedAt"`
	CancelledAt              string        `json:"cancelledAt"`
	DisplayFinancialStatus   string        `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string        `json:"displayFulfillmentStatus"`
	SubtotalPriceSet         moneySet      `json:"subtotalPriceSet"`
	TotalPriceSet            moneySet      `json:"totalPriceSet"`
	TotalTaxSet              moneySet      `json:"totalTaxSet"`
	Customer                 *customerNode `json:"customer"`
	LineItems                struct {
		Edges []struct {
			Node lineItemNode `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type ordersConnection struct {
	Edges []struct {
		Node orderNode `json:"node"`
	} `json:"edges"`
	PageInfo pageInfo `json:"pageInfo"`
}

type ordersData struct {
	Orders ordersConnection `json:"orders"`
}

// Webhook payload shapes. These follow the platform's REST conventions:
// snake_case keys and plain numeric ids.

type webhookCustomer struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	TotalSpent string `json:"total_spent"`
	Currency   string `json:"currency"`
}

type webhookLineItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	ProductID *int64 `json:"product_id"`
	VariantID *int64 `json:"variant_id"`
}

type webhookOrder struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Customer          *webhookCustomer  `json:"customer"`
	Status            string            `json:"status"`
	FinancialStatus   string            `json:"financial_status"`
	FulfillmentStatus string            `json:"fulfillment_status"`
	SubtotalPrice     string            `json:"subtotal_price"`
	TotalPrice        string            `json:"total_price"`
	TotalTax          string            `json:"total_tax"`
	Currency          string            `json:"currency"`
	ProcessedAt       string            `json:"processed_at"`
	CancelledAt       string            `json:"cancelled_at"`
	LineItems         []webhookLineItem `json:"line_items"`
}

type webhookProduct struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"product_type"`
	Status      string `json:"status"`
}
