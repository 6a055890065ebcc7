// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package restclient

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Product is the console's view of a catalogue product.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Stock       int      `json:"stock"`
	IsPublished bool     `json:"is_published"`
	CategoryID  int64    `json:"category_id"`
	Tags        []string `json:"tags,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// Category is one node of the category tree.
type Category struct {
	ID       int64       `json:"id"`
	ParentID *int64      `json:"parent_id"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	Children []*Category `json:"children,omitempty"`
}

// Tag is a free-form product label.
type Tag struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int64  `json:"product_count,omitempty"`
}

// Voucher is a discount code definition.
type Voucher struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue int64     `json:"discount_value"`
	MinOrderCents int64     `json:"min_order_cents"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	UsageLimit    int       `json:"usage_limit"`
	UsageCount    int       `json:"usage_count"`
	PerUserLimit  int       `json:"per_user_limit"`
	IsActive      bool      `json:"is_active"`
}

// # Products

// ListProducts fetches a catalogue page. Drafts are included because the
// console always calls as staff.
func (client *Client) ListProducts(context context.Context, page, limit int) ([]Product, *Meta, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("limit", fmt.Sprint(limit))
	query.Set("include_drafts", "true")

	var products []Product
	meta, err := client.get(context, "/api/v1/products?"+query.Encode(), &products)
	return products, meta, err
}

// SearchProducts runs a full-text catalogue search.
func (client *Client) SearchProducts(context context.Context, term string, page, limit int) ([]Product, *Meta, error) {
	query := url.Values{}
	query.Set("q", term)
	query.Set("page", fmt.Sprint(page))
	query.Set("limit", fmt.Sprint(limit))

	var products []Product
	meta, err := client.get(context, "/api/v1/products/search?"+query.Encode(), &products)
	return products, meta, err
}

// GetProduct fetches one product by ID, drafts included.
func (client *Client) GetProduct(context context.Context, id int64) (Product, error) {
	var product Product
	_, err := client.get(context, fmt.Sprintf("/api/v1/products/id/%d", id), &product)
	return product, err
}

// CreateProduct creates a product from an arbitrary form payload.
func (client *Client) CreateProduct(context context.Context, form map[string]any) (Product, error) {
	var product Product
	err := client.post(context, "/api/v1/products", form, &product)
	return product, err
}

// UpdateProduct applies a partial edit.
func (client *Client) UpdateProduct(context context.Context, id int64, form map[string]any) (Product, error) {
	var product Product
	err := client.patch(context, fmt.Sprintf("/api/v1/products/%d", id), form, &product)
	return product, err
}

// DeleteProduct removes a product.
func (client *Client) DeleteProduct(context context.Context, id int64) error {
	return client.delete(context, fmt.Sprintf("/api/v1/products/%d", id))
}

// # Categories

// CategoryTree fetches the full nested category tree.
func (client *Client) CategoryTree(context context.Context) ([]*Category, error) {
	var tree []*Category
	_, err := client.get(context, "/api/v1/categories", &tree)
	return tree, err
}

// CreateCategory adds a category, optionally under a parent.
func (client *Client) CreateCategory(context context.Context, form map[string]any) (Category, error) {
	var category Category
	err := client.post(context, "/api/v1/categories", form, &category)
	return category, err
}

// UpdateCategory applies a partial edit.
func (client *Client) UpdateCategory(context context.Context, id int64, form map[string]any) (Category, error) {
	var category Category
	err := client.patch(context, fmt.Sprintf("/api/v1/categories/%d", id), form, &category)
	return category, err
}

// DeleteCategory removes an empty category. Admin only on the backend.
func (client *Client) DeleteCategory(context context.Context, id int64) error {
	return client.delete(context, fmt.Sprintf("/api/v1/categories/%d", id))
}

// # Tags

// ListTags fetches every tag with its product count.
func (client *Client) ListTags(context context.Context) ([]Tag, error) {
	var tags []Tag
	_, err := client.get(context, "/api/v1/tags", &tags)
	return tags, err
}

// CreateTag adds a tag.
func (client *Client) CreateTag(context context.Context, name string) (Tag, error) {
	var tag Tag
	err := client.post(context, "/api/v1/tags", map[string]string{"name": name}, &tag)
	return tag, err
}

// RenameTag changes a tag's name; the backend re-derives the slug.
func (client *Client) RenameTag(context context.Context, id int64, name string) (Tag, error) {
	var tag Tag
	err := client.patch(context, fmt.Sprintf("/api/v1/tags/%d", id), map[string]string{"name": name}, &tag)
	return tag, err
}

// DeleteTag removes a tag.
func (client *Client) DeleteTag(context context.Context, id int64) error {
	return client.delete(context, fmt.Sprintf("/api/v1/tags/%d", id))
}

// # Vouchers

// ListVouchers fetches a voucher page.
func (client *Client) ListVouchers(context context.Context, page, limit int) ([]Voucher, *Meta, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("limit", fmt.Sprint(limit))

	var vouchers []Voucher
	meta, err := client.get(context, "/api/v1/vouchers?"+query.Encode(), &vouchers)
	return vouchers, meta, err
}

// CreateVoucher adds a voucher.
func (client *Client) CreateVoucher(context context.Context, form map[string]any) (Voucher, error) {
	var voucher Voucher
	err := client.post(context, "/api/v1/vouchers", form, &voucher)
	return voucher, err
}

// UpdateVoucher applies a partial edit.
func (client *Client) UpdateVoucher(context context.Context, id int64, form map[string]any) (Voucher, error) {
	var voucher Voucher
	err := client.patch(context, fmt.Sprintf("/api/v1/vouchers/%d", id), form, &voucher)
	return voucher, err
}

// DeleteVoucher removes a voucher.
func (client *Client) DeleteVoucher(context context.Context, id int64) error {
	return client.delete(context, fmt.Sprintf("/api/v1/vouchers/%d", id))
}
