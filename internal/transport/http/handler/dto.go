package handler

import (
	"time"

	"booking-platform/internal/domain"
	"booking-platform/internal/transport/http/ez"
)

type idIn struct {
	ID int64 `uri:"id" json:"-"`
}

type deletedOut struct {
	Deleted bool `json:"deleted"`
}

type countOut struct {
	Deleted int64 `json:"deleted"`
}

// parseDay reads an optional YYYY-MM-DD value; "" is the zero time.
func parseDay(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDay(s)
	if err != nil {
		return time.Time{}, ez.BadRequest(field + " must be YYYY-MM-DD")
	}
	return t, nil
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return domain.Day(t).Format(domain.DayLayout)
}

type accommodationDTO struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	RoomCount         int     `json:"roomCount"`
	BedCount          int     `json:"bedCount"`
	PricePerNight     float64 `json:"pricePerNight"`
	AvailabilityStart string  `json:"availabilityStart"`
	AvailabilityEnd   string  `json:"availabilityEnd"`
	HostID            int64   `json:"hostId"`
}

func (d accommodationDTO) toDomain() (*domain.Accommodation, error) {
	start, err := parseDay("availabilityStart", d.AvailabilityStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDay("availabilityEnd", d.AvailabilityEnd)
	if err != nil {
		return nil, err
	}
	return &domain.Accommodation{
		ID: d.ID, Name: d.Name, Address: d.Address,
		RoomCount: d.RoomCount, BedCount: d.BedCount, PricePerNight: d.PricePerNight,
		AvailabilityStart: start, AvailabilityEnd: end, HostID: d.HostID,
	}, nil
}

func toAccommodationDTO(a *domain.Accommodation) accommodationDTO {
	return accommodationDTO{
		ID: a.ID, Name: a.Name, Address: a.Address,
		RoomCount: a.RoomCount, BedCount: a.BedCount, PricePerNight: a.PricePerNight,
		AvailabilityStart: formatDay(a.AvailabilityStart),
		AvailabilityEnd:   formatDay(a.AvailabilityEnd),
		HostID:            a.HostID,
	}
}

func toAccommodationDTOs(rows []domain.Accommodation) []accommodationDTO {
	out := make([]accommodationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toAccommodationDTO(&rows[i]))
	}
	return out
}

type popularityDTO struct {
	Accommodation accommodationDTO `json:"accommodation"`
	Reservations  int64            `json:"reservations"`
}

func toPopularityDTO(p *domain.Popularity) *popularityDTO {
	if p == nil {
		return nil
	}
	return &popularityDTO{Accommodation: toAccommodationDTO(&p.Accommodation), Reservations: p.Reservations}
}

type reservationDTO struct {
	ID              int64     `json:"id"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	UserID          int64     `json:"userId"`
	AccommodationID int64     `json:"accommodationId"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (d reservationDTO) toDomain() (*domain.Reservation, error) {
	start, err := parseDay("startDate", d.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDay("endDate", d.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.Reservation{
		ID: d.ID, StartDate: start, EndDate: end,
		UserID: d.UserID, AccommodationID: d.AccommodationID, CreatedAt: d.CreatedAt,
	}, nil
}

func toReservationDTO(r *domain.Reservation) reservationDTO {
	return reservationDTO{
		ID: r.ID, StartDate: formatDay(r.StartDate), EndDate: formatDay(r.EndDate),
		UserID: r.UserID, AccommodationID: r.AccommodationID, CreatedAt: r.CreatedAt,
	}
}

func toReservationDTOs(rows []domain.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toReservationDTO(&rows[i]))
	}
	return out
}
