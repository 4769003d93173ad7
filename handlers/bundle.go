package handlers

// HandlerBundle collects the assembled handlers for route registration.
type HandlerBundle struct {
	Auth    *AuthHandler
	Booking *BookingHandler
	Payment *PaymentHandler
}
