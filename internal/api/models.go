package api

import (
	"errors"

	"github.com/emberhq/portfolio-api/internal/api/shared"
	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/service"
	"github.com/emberhq/portfolio-api/internal/task"
	"github.com/emberhq/portfolio-api/internal/weather"
)

// Login payload validation errors.
var (
	errPasswordRequired        = errors.New("password is required")
	errLoginIdentifierRequired = errors.New("username or email is required")
)

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=80"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"max=50"`
	LastName        string `json:"last_name" validate:"max=50"`
}

// LoginRequest defines the payload for user login. Callers identify
// themselves by username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements the custom validation hook used by ValidateRequest.
func (r *LoginRequest) Validate() error {
	if r.Password == "" {
		return errPasswordRequired
	}
	if r.Username == "" && r.Email == "" {
		return errLoginIdentifierRequired
	}
	return nil
}

// RefreshRequest defines the payload for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by the register, login and refresh endpoints.
type AuthResponse struct {
	Message      string       `json:"message"`
	User         *domain.User `json:"user,omitempty"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

// UpdateUserRequest defines a partial update of a user profile. Nil fields
// are left unchanged. Role and IsActive are honored for admin callers only.
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=80"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Role      *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive  *bool   `json:"is_active"`
}

// UserListResponse is the envelope for user listings.
type UserListResponse struct {
	Users []domain.User `json:"users"`
	shared.Pagination
}

// CreateProductRequest defines the payload for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=50"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest defines a partial update of a product. Nil fields
// are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool    `json:"is_active"`
}

// ProductListResponse is the envelope for product listings.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	shared.Pagination
}

// CategoryListResponse is the envelope for the product category listing.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CreateOrderRequest defines the payload for placing an order.
type CreateOrderRequest struct {
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	PaymentMethod   string             `json:"payment_method" validate:"required,oneof=credit_card paypal bank_transfer"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest defines the payload for an order status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// UpdatePaymentStatusRequest defines the payload for a payment status change.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=unpaid paid refunded"`
}

// OrderListResponse is the envelope for order listings.
type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
	shared.Pagination
}

// CreatePostRequest defines the payload for creating a blog post.
type CreatePostRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Slug          string   `json:"slug"`
	Content       string   `json:"content" validate:"required"`
	Summary       string   `json:"summary"`
	FeaturedImage string   `json:"featured_image" validate:"omitempty,url"`
	Status        string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	Tags          []string `json:"tags"`
	IsFeatured    bool     `json:"is_featured"`
}

// UpdatePostRequest defines a partial update of a blog post. Nil fields are
// left unchanged; a nil Tags slice keeps the current tags.
type UpdatePostRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Content       *string  `json:"content"`
	Summary       *string  `json:"summary"`
	FeaturedImage *string  `json:"featured_image" validate:"omitempty,url"`
	Status        *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Tags          []string `json:"tags"`
	IsFeatured    *bool    `json:"is_featured"`
}

// PostResponse decorates a blog post with its tags as a list.
type PostResponse struct {
	domain.BlogPost
	Tags []string `json:"tags"`
}

// NewPostResponse builds the JSON shape of a single blog post.
func NewPostResponse(post *domain.BlogPost) PostResponse {
	return PostResponse{
		BlogPost: *post,
		Tags:     post.TagList(),
	}
}

// PostListResponse is the envelope for blog post listings.
type PostListResponse struct {
	Posts []PostResponse `json:"blog_posts"`
	shared.Pagination
}

// TagListResponse is the envelope for the blog tag listing.
type TagListResponse struct {
	Tags []service.TagCount `json:"tags"`
}

// CreateTaskRequest defines the payload for starting a background task.
// Duration is the simulated processing time in seconds.
type CreateTaskRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration" validate:"required,gte=1,lte=60"`
}

// TaskResponse is the envelope for a single task.
type TaskResponse struct {
	Message string    `json:"message,omitempty"`
	Task    task.Task `json:"task"`
}

// TaskListResponse is the envelope for task listings.
type TaskListResponse struct {
	Tasks []task.Task `json:"tasks"`
}

// WeatherResponse is the envelope for a current weather report.
type WeatherResponse struct {
	Weather weather.Report `json:"weather"`
}

// ForecastResponse is the envelope for a multi-day forecast.
type ForecastResponse struct {
	City     string           `json:"city"`
	Forecast []weather.Report `json:"forecast"`
}

// CityListResponse is the envelope for the supported city listing.
type CityListResponse struct {
	Cities []string `json:"cities"`
}
