package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KB", 1024, "1.00 KB"},
		{"1.5 KB", 1536, "1.50 KB"},
		{"1 MB", 1024 * 1024, "1.00 MB"},
		{"typical file 700 MB", 734003200, "700.00 MB"},
		{"4.7 GB", 5046586572, "4.70 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatBitrate(t *testing.T) {
	tests := []struct {
		name string
		bps  float64
		want string
	}{
		{"sub-kilobit", 800, "800.00 bps"},
		{"kilobit range", 843_000, "843.00 Kbps"},
		{"megabit range", 5_220_000, "5.22 Mbps"},
		{"zero", 0, "0.00 bps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBitrate(tt.bps)
			if got != tt.want {
				t.Errorf("FormatBitrate(%v) = %q, want %q", tt.bps, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00:00"},
		{"negative", -5, "00:00:00"},
		{"seconds only", 42, "00:00:42"},
		{"minutes", 125, "00:02:05"},
		{"hours", 3 * 3600, "03:00:00"},
		{"movie length", 7509, "02:05:09"},
		{"over a day", 86400 + 2*3600 + 15*60 + 9, "1d 02:15:09"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseDuration_RoundTrip(t *testing.T) {
	tests := []float64{0, 42, 125, 7509, 86400 + 2*3600 + 15*60 + 9}
	for _, sec := range tests {
		got := ParseDuration(FormatDuration(sec))
		if got != sec {
			t.Errorf("ParseDuration(FormatDuration(%v)) = %v, want %v", sec, got, sec)
		}
	}
}

func TestParseDuration_Malformed(t *testing.T) {
	for _, in := range []string{"", "garbage", "12:34"} {
		if got := ParseDuration(in); got != 0 {
			t.Errorf("ParseDuration(%q) = %v, want 0", in, got)
		}
	}
}
