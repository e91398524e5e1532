package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{"native passes through", "u:p@tcp(db:3306)/booking?parseTime=true", "", "", "u:p@tcp(db:3306)/booking?parseTime=true"},
		{"url form", "mysql://u:p@db:3306/booking", "", "", "u:p@tcp(db:3306)/booking?charset=utf8mb4&parseTime=true"},
		{"jdbc with ssl", "jdbc:mysql://db:3306/booking?useSSL=false&characterEncoding=utf8", "root", "secret", "root:secret@tcp(db:3306)/booking?charset=utf8&parseTime=true&tls=false"},
		{"empty", "  ", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db:3306)/booking", maskDSN("root:secret@tcp(db:3306)/booking"))
	assert.Equal(t, "tcp(db:3306)/booking", maskDSN("tcp(db:3306)/booking"))
}

func TestNewGormRejectsUnknownDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))
}
