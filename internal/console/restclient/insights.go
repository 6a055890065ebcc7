// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package restclient

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Overview is the dashboard's headline counters.
type Overview struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Articles int `json:"articles"`
	Vouchers int `json:"vouchers"`
}

// SignupPoint is one day of the signup chart.
type SignupPoint struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// TopProduct is one row of the most-viewed table.
type TopProduct struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ViewCount int64  `json:"view_count"`
}

// StatsOverview fetches the dashboard counters.
func (client *Client) StatsOverview(context context.Context) (Overview, error) {
	var overview Overview
	_, err := client.get(context, "/api/v1/stats/overview", &overview)
	return overview, err
}

// SignupsPerDay fetches the signup chart for the trailing window.
func (client *Client) SignupsPerDay(context context.Context, days int) ([]SignupPoint, error) {
	var points []SignupPoint
	_, err := client.get(context, fmt.Sprintf("/api/v1/stats/signups?days=%d", days), &points)
	return points, err
}

// TopViewedProducts fetches the most-viewed product table.
func (client *Client) TopViewedProducts(context context.Context, limit int) ([]TopProduct, error) {
	var products []TopProduct
	_, err := client.get(context, fmt.Sprintf("/api/v1/stats/top-products?limit=%d", limit), &products)
	return products, err
}

// Recommendations fetches the storefront feed for a visitor, mainly used
// by the console's feed preview.
func (client *Client) Recommendations(context context.Context, visitorID string) ([]Product, error) {
	query := url.Values{}
	if visitorID != "" {
		query.Set("visitor_id", visitorID)
	}
	var products []Product
	_, err := client.get(context, "/api/v1/recommendations?"+query.Encode(), &products)
	return products, err
}
