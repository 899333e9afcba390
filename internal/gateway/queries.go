package gateway

// GraphQL documents. cartFields is shared by every cart operation so the
// store always receives the full updated cart, including the recomputed
// total.

const cartFields = `
      id
      checkoutUrl
      cost {
        totalAmount {
          amount
          currencyCode
        }
      }
      lines(first: 50) {
        edges {
          node {
            id
            quantity
            cost {
              subtotalAmount {
                amount
                currencyCode
              }
            }
            merchandise {
              ... on ProductVariant {
                id
                title
                image {
                  url
                }
                product {
                  title
                  handle
                }
              }
            }
          }
        }
      }`

const cartCreateMutation = `
  mutation CartCreate {
    cartCreate {
      cart {` + cartFields + `
      }
      userErrors {
        field
        message
      }
    }
  }`

const cartQuery = `
  query GetCart($cartId: ID!) {
    cart(id: $cartId) {` + cartFields + `
    }
  }`

const cartLinesAddMutation = `
  mutation AddToCart($cartId: ID!, $variantId: ID!, $quantity: Int!) {
    cartLinesAdd(cartId: $cartId, lines: [{quantity: $quantity, merchandiseId: $variantId}]) {
      cart {` + cartFields + `
      }
      userErrors {
        field
        message
      }
    }
  }`

const cartLinesRemoveMutation = `
  mutation RemoveFromCart($cartId: ID!, $lineIds: [ID!]!) {
    cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
      cart {` + cartFields + `
      }
      userErrors {
        field
        message
      }
    }
  }`

const cartLinesUpdateMutation = `
  mutation UpdateCartLines($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
    cartLinesUpdate(cartId: $cartId, lines: $lines) {
      cart {` + cartFields + `
      }
      userErrors {
        field
        message
      }
    }
  }`

const productFields = `
      id
      title
      handle
      productType
      tags
      description
      descriptionHtml
      images(first: 10) {
        edges {
          node {
            url
          }
        }
      }
      variants(first: 10) {
        edges {
          node {
            id
            title
            availableForSale
            quantityAvailable
            price {
              amount
              currencyCode
            }
            compareAtPrice {
              amount
              currencyCode
            }
            image {
              url
            }
            selectedOptions {
              name
              value
            }
          }
        }
      }
      options {
        id
        name
        values
      }`

const productsQuery = `
  query GetProducts($limit: Int!) {
    products(first: $limit) {
      edges {
        node {` + productFields + `
        }
      }
    }
  }`

const productSearchQuery = `
  query SearchProducts($query: String!) {
    products(first: 20, query: $query) {
      edges {
        node {` + productFields + `
        }
      }
    }
  }`

const productByTitleQuery = `
  query GetProductByTitle($query: String!) {
    products(first: 10, query: $query) {
      edges {
        node {` + productFields + `
        }
      }
    }
  }`

const collectionsQuery = `
  query GetAllCollections($limit: Int!) {
    collections(first: $limit) {
      edges {
        node {
          id
          title
          description
          handle
          image {
            url
          }
        }
      }
    }
  }`

const collectionQuery = `
  query GetCollection($title: String!, $limit: Int!) {
    collections(first: 250, query: $title) {
      edges {
        node {
          id
          title
          description
          handle
          image {
            url
          }
          products(first: $limit) {
            edges {
              node {` + productFields + `
              }
            }
          }
        }
      }
    }
  }`
