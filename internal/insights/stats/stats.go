// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

// Package stats serves the back-office dashboard aggregates.
package stats

import "time"

// Overview carries the headline totals shown on the admin landing page.
type Overview struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Articles int `json:"articles"`
	Vouchers int `json:"vouchers"`
}

// SignupPoint is one day's worth of registrations.
type SignupPoint struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// TopProduct is a catalogue entry ranked by accumulated views.
type TopProduct struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ViewCount int64  `json:"view_count"`
}
