package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CalendarSuite struct {
	suite.Suite
}

func TestCalendarSuite(t *testing.T) {
	suite.Run(t, new(CalendarSuite))
}

func (s *CalendarSuite) TestAdToBs() {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"day stays within month", "2024-01-15", "2080-09-30"},
		{"day wraps into next month", "2024-01-20", "2080-10-05"},
		{"month wraps into next year", "2024-05-10", "2081-01-25"},
		{"day wrap pushes month past december", "2024-04-20", "2081-01-05"},
		{"single digit components are padded", "2000-1-1", "2056-09-16"},
		{"day is clamped to the upper bound", "2024-01-99", "2080-10-32"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, AdToBs(tc.in))
		})
	}
}

func (s *CalendarSuite) TestBsToAd() {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"day stays within month", "2080-09-30", "2024-01-15"},
		{"day borrows from previous month", "2080-10-05", "2024-01-20"},
		{"month borrows from previous year", "2081-01-25", "2024-05-10"},
		{"day borrow pushes month before january", "2081-01-05", "2024-04-20"},
		{"day is clamped to the upper bound", "2080-09-50", "2024-01-31"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, BsToAd(tc.in))
		})
	}
}

func (s *CalendarSuite) TestRoundTrip() {
	for year := 1990; year <= 2030; year += 7 {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 10, 15, 16, 28} {
				ad := fmt.Sprintf("%d-%02d-%02d", year, month, day)
				s.Equal(ad, BsToAd(AdToBs(ad)), "round trip of %s", ad)
			}
		}
	}
}

func (s *CalendarSuite) TestClampNeverExceedsBound() {
	for day := 1; day <= 120; day++ {
		bs := AdToBs(fmt.Sprintf("2024-03-%d", day))
		var y, m, d int
		_, err := fmt.Sscanf(bs, "%d-%d-%d", &y, &m, &d)
		s.Require().NoError(err)
		s.LessOrEqual(d, MaxBSDay)
		s.GreaterOrEqual(d, 1)

		ad := BsToAd(fmt.Sprintf("2080-03-%d", day))
		_, err = fmt.Sscanf(ad, "%d-%d-%d", &y, &m, &d)
		s.Require().NoError(err)
		s.LessOrEqual(d, MaxADDay)
		s.GreaterOrEqual(d, 1)
	}
}

func (s *CalendarSuite) TestTotality() {
	s.Run("empty input yields empty output", func() {
		s.Equal("", AdToBs(""))
		s.Equal("", BsToAd(""))
	})

	s.Run("non numeric components propagate as NaN", func() {
		s.Equal("NaN-NaN-NaN", AdToBs("abc"))
		s.Equal("2080-NaN-25", AdToBs("2024-xx-10"))
		s.Equal("NaN-NaN-NaN", BsToAd("not-a-date"))
	})

	s.Run("missing components propagate as NaN", func() {
		s.Equal("2080-09-NaN", AdToBs("2024-01"))
	})

	s.Run("blank components parse as zero", func() {
		s.Equal("2080-08-16", AdToBs("2024--01"))
	})
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)

	t.Run("returns N on the anniversary", func(t *testing.T) {
		assert.Equal(t, 25, CalculateAge("2001-10-14", now))
	})

	t.Run("returns N-1 the day before the anniversary", func(t *testing.T) {
		assert.Equal(t, 24, CalculateAge("2001-10-15", now))
	})

	t.Run("returns N-1 when the birthday month is later in the year", func(t *testing.T) {
		assert.Equal(t, 24, CalculateAge("2001-12-01", now))
	})

	t.Run("returns N when the birthday month already passed", func(t *testing.T) {
		assert.Equal(t, 25, CalculateAge("2001-01-31", now))
	})

	t.Run("empty input is zero", func(t *testing.T) {
		assert.Equal(t, 0, CalculateAge("", now))
	})

	t.Run("unparseable input is zero", func(t *testing.T) {
		assert.Equal(t, 0, CalculateAge("NaN-NaN-NaN", now))
	})

	t.Run("unpadded components are accepted", func(t *testing.T) {
		assert.Equal(t, 25, CalculateAge("2001-5-20", now))
		assert.Equal(t, CalculateAge("2001-05-20", now), CalculateAge("2001-5-20", now))
	})

	t.Run("out of range days produced by BsToAd still count", func(t *testing.T) {
		ad := BsToAd("2058-11-15")
		require.Equal(t, "2002-02-30", ad)
		assert.Equal(t, 24, CalculateAge(ad, now))
	})

	t.Run("partially numeric input is zero", func(t *testing.T) {
		assert.Equal(t, 0, CalculateAge("2001-xx-10", now))
		assert.Equal(t, 0, CalculateAge("2001-05", now))
	})

	t.Run("leap day birthdays count on march first", func(t *testing.T) {
		feb28 := time.Date(2027, time.February, 28, 0, 0, 0, 0, time.UTC)
		mar1 := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 26, CalculateAge("2000-02-29", feb28))
		assert.Equal(t, 27, CalculateAge("2000-02-29", mar1))
	})
}

func TestAgeUsesWallClock(t *testing.T) {
	birth := time.Now().AddDate(-30, 0, 0).Format(Layout)
	require.Equal(t, 30, Age(birth))
}
