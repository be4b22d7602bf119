package hebcal

import "testing"

func TestMoladComponents(t *testing.T) {
	tests := []struct {
		year  int
		day   int
		hour  int
		parts int
	}{
		// Molad tohu: day 1 at night, hour 5, part 204.
		{1, 1, 5, 204},
		{5785, 2112590, 9, 391},
	}

	for _, tt := range tests {
		day, hour, parts := MoladComponents(tt.year)
		if day != tt.day || hour != tt.hour || parts != tt.parts {
			t.Errorf("MoladComponents(%d) = (%d, %d, %d), want (%d, %d, %d)",
				tt.year, day, hour, parts, tt.day, tt.hour, tt.parts)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{5700, true},
		{5701, false},
		{5702, false},
		{5703, true},
		{5782, true},
		{5783, false},
		{5784, true},
		{5785, false},
		{5786, false},
		{5787, true},
		// Year 0 is position 19 of the cycle, a leap year.
		{0, true},
		{-17, false},
	}

	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestMetonicCycle(t *testing.T) {
	// Every window of 19 consecutive years contains exactly 7 leap years.
	for start := 5700; start < 5760; start++ {
		leaps := 0
		for y := start; y < start+19; y++ {
			if IsLeapYear(y) {
				leaps++
			}
		}
		if leaps != 7 {
			t.Errorf("years %d..%d contain %d leap years, want 7", start, start+18, leaps)
		}
	}
}

func TestYearLength(t *testing.T) {
	common := map[int]bool{353: true, 354: true, 355: true}
	leap := map[int]bool{383: true, 384: true, 385: true}

	for year := 5600; year <= 5900; year++ {
		length := YearLength(year)
		if IsLeapYear(year) {
			if !leap[length] {
				t.Errorf("YearLength(%d) = %d, want one of 383/384/385 for a leap year", year, length)
			}
		} else {
			if !common[length] {
				t.Errorf("YearLength(%d) = %d, want one of 353/354/355 for a common year", year, length)
			}
		}
	}
}

func TestYearLength_Known(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{5784, 383}, // deficient leap year
		{5785, 355}, // complete common year
	}

	for _, tt := range tests {
		if got := YearLength(tt.year); got != tt.want {
			t.Errorf("YearLength(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestYearStart_Monotonic(t *testing.T) {
	for year := -50; year <= 6200; year++ {
		if YearStart(year) >= YearStart(year+1) {
			t.Errorf("YearStart(%d) = %d is not below YearStart(%d) = %d",
				year, YearStart(year), year+1, YearStart(year+1))
		}
	}
}

func TestYearStart_NeverADU(t *testing.T) {
	// Rosh Hashana never falls on Sunday, Wednesday, or Friday.
	for year := 1; year <= 6200; year++ {
		switch floorMod(int64(YearStart(year)), 7) {
		case 0, 3, 5:
			t.Errorf("YearStart(%d) = %d falls on a forbidden weekday", year, YearStart(year))
		}
	}
}

func TestYearStart_Epoch(t *testing.T) {
	if got := YearStart(1); got != 1 {
		t.Errorf("YearStart(1) = %d, want 1", got)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, div, mod int64
	}{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
		{0, 19, 0, 0},
		{-1, 19, -1, 18},
	}

	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.div)
		}
		if got := floorMod(tt.a, tt.b); got != tt.mod {
			t.Errorf("floorMod(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.mod)
		}
	}
}
