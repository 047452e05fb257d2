//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import "testing"

func TestChannelLayoutChannels(t *testing.T) {
	tests := []struct {
		layout ChannelLayout
		want   int
	}{
		{ChannelFrontLeft, 1},
		{ChannelLayoutMono, 1},
		{ChannelLayoutStereo, 2},
		{ChannelLayout2Point1, 3},
		{ChannelLayout5Point1, 6},
		{ChannelLayout7Point1, 8},
		{ChannelLayout7Point1Wide, 8},
	}
	for _, tt := range tests {
		if got := tt.layout.Channels(); got != tt.want {
			t.Errorf("%v.Channels() = %d, want %d", tt.layout, got, tt.want)
		}
	}
}

func TestParseChannelLayout(t *testing.T) {
	tests := []struct {
		in      string
		want    ChannelLayout
		wantErr bool
	}{
		{"mono", ChannelLayoutMono, false},
		{"Stereo", ChannelLayoutStereo, false},
		{"5.1", ChannelLayout5Point1, false},
		{"0x1", ChannelFrontLeft, false},
		{"3", ChannelLayoutStereo, false},
		{"0", 0, true},
		{"quad-ish", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseChannelLayout(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseChannelLayout(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestChannelLayoutStringRoundTrip(t *testing.T) {
	for _, cl := range []ChannelLayout{ChannelLayoutMono, ChannelLayout6Point1, 0x30} {
		got, err := ParseChannelLayout(cl.String())
		if err != nil || got != cl {
			t.Errorf("ParseChannelLayout(%q) = %v, %v", cl.String(), got, err)
		}
	}
}
