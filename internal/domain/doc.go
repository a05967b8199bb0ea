// Package domain defines the core business entities of the portfolio API:
// users, products, orders and blog posts, along with their validation rules
// and lifecycle constants. Entities here are persistence-agnostic; stores
// and services operate on these types.
package domain
