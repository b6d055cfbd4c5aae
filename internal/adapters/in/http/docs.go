// Package http exposes the order use cases over a JSON API built on echo.
//
// # Routes
//
//	GET    /api/v1/orders                     list orders, newest first
//	POST   /api/v1/orders                     place an order (201)
//	GET    /api/v1/orders/{orderId}           fetch one order
//	DELETE /api/v1/orders/{orderId}           delete an order (204)
//	POST   /api/v1/orders/{orderId}/confirm   confirm a Pending order
//	POST   /api/v1/orders/{orderId}/cancel    cancel a Pending or Confirmed order
//
// # Errors
//
// Every failure is answered with {"code": ..., "message": ...}:
//   - 400 for malformed bodies and values the domain rejects
//   - 404 when the order does not exist
//   - 409 when the status does not allow the transition
//   - 500 for storage failures, which are logged and not echoed back
//
// Request bodies are checked twice: against api/openapi.yaml by the
// validation middleware, then by go-playground/validator on the bound struct.
package http
