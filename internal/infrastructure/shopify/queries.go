package shopify

// GraphQL documents for the paginated bulk import. Both take a $first page
// size and an optional $cursor and return pageInfo for the fetch loop.

const productsQuery = `
query getProducts($first: Int!, $cursor: String) {
  products(first: $first, after: $cursor) {
    edges {
      node {
        id
        title
        vendor
        productType
        status
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

const ordersQuery = `
query getOrders($first: Int!, $cursor: String) {
  orders(first: $first, after: $cursor) {
    edges {
      node {
        id
        name
        email
        processedAt
        cancelledAt
        displayFinancialStatus
        displayFulfillmentStatus
        subtotalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        totalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        totalTaxSet {
          shopMoney {
            amount
          }
        }
        customer {
          id
          email
          firstName
          lastName
          amountSpent {
            amount
            currencyCode
          }
        }
        lineItems(first: 100) {
          edges {
            node {
              id
              title
              sku
              quantity
              originalUnitPriceSet {
                shopMoney {
                  amount
                }
              }
              product {
                id
              }
              variant {
                id
              }
            }
          }
        }
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`
