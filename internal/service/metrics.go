package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"booking-platform/internal/domain"
)

const outcomeAccepted = "ACCEPTED"

var admissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "booking_reservation_admissions_total",
		Help: "Reservation requests by admission outcome",
	},
	[]string{"outcome"},
)

var doubleBookings = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "booking_reservation_overlaps_total",
	Help: "Admitted reservations that overlap another reservation on the same listing",
})

func init() { prometheus.MustRegister(admissions, doubleBookings) }

func observeAdmission(err error) {
	if err == nil {
		admissions.WithLabelValues(outcomeAccepted).Inc()
		return
	}
	k := domain.KindOf(err)
	if k == "" {
		k = domain.KindStorage
	}
	admissions.WithLabelValues(string(k)).Inc()
}
