// Package handler maps the booking services onto the /api/v1 and /admin/v1
// route groups.
package handler

import (
	"go.uber.org/zap"

	"booking-platform/internal/service"
)

// All returns every handler module, ready for a router.Registry.
func All(svc *service.Services, l *zap.Logger) []any {
	if l == nil {
		l = zap.NewNop()
	}
	return []any{
		NewUserHandler(svc.Users, l),
		NewHostHandler(svc.Hosts, l),
		NewAccommodationHandler(svc.Accommodations, l),
		NewReservationHandler(svc.Reservations, l),
		NewFeedbackHandler(svc.Feedbacks, l),
		NewStatsHandler(svc, l),
	}
}
