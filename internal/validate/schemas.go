package validate

import "regexp"

// Route schemas. Each is the complete rule table for one request
// surface; the Request middleware evaluates body, params and query
// independently and concatenates their violations.

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Register is the body schema for POST /api/auth/register.
var Register = &Schema{Fields: []Field{
	{Name: "username", Kind: KindString, Required: true, Rules: []Rule{
		MinLen(3, "username must be at least 3 characters"),
		MaxLen(50, "username must be at most 50 characters"),
		Pattern(usernameRe, "username may only contain letters, numbers and underscores"),
	}},
	{Name: "email", Kind: KindString, Required: true, Rules: []Rule{
		MaxLen(255, "email must be at most 255 characters"),
		Pattern(emailRe, "email must be a valid email address"),
	}},
	{Name: "password", Kind: KindString, Required: true, Rules: []Rule{
		MinLen(8, "password must be at least 8 characters"),
		MaxLen(72, "password must be at most 72 characters"), // bcrypt input limit
	}},
}}

// Login is the body schema for POST /api/auth/login.
var Login = &Schema{Fields: []Field{
	{Name: "username", Kind: KindString, Required: true},
	{Name: "password", Kind: KindString, Required: true},
}}

// ProductCreate is the body schema for POST /api/products.
var ProductCreate = &Schema{Fields: []Field{
	{Name: "name", Kind: KindString, Required: true, Rules: []Rule{
		MaxLen(255, "name must be at most 255 characters"),
	}},
	{Name: "description", Kind: KindString, Rules: []Rule{
		MaxLen(1000, "description must be at most 1000 characters"),
	}},
	{Name: "price", Kind: KindFloat, Required: true, Rules: []Rule{
		GreaterThan(0, "price must be greater than 0"),
		Max(999999.99, "price must be at most 999999.99"),
		MaxDecimals(2, "price may have at most 2 decimal places"),
	}},
	{Name: "category", Kind: KindString, Required: true, Rules: []Rule{
		MaxLen(100, "category must be at most 100 characters"),
	}},
}}

// ProductUpdate is the body schema for PUT /api/products/:id. Every
// field is optional; absence means "keep the current value", and an
// explicitly empty description is preserved as provided.
var ProductUpdate = &Schema{Fields: []Field{
	{Name: "name", Kind: KindString, Rules: []Rule{
		MinLen(1, "name cannot be empty"),
		MaxLen(255, "name must be at most 255 characters"),
	}},
	{Name: "description", Kind: KindString, Rules: []Rule{
		MaxLen(1000, "description must be at most 1000 characters"),
	}},
	{Name: "price", Kind: KindFloat, Rules: []Rule{
		GreaterThan(0, "price must be greater than 0"),
		Max(999999.99, "price must be at most 999999.99"),
		MaxDecimals(2, "price may have at most 2 decimal places"),
	}},
	{Name: "category", Kind: KindString, Rules: []Rule{
		MinLen(1, "category cannot be empty"),
		MaxLen(100, "category must be at most 100 characters"),
	}},
}}

// IDParam is the path-param schema for routes carrying /:id.
var IDParam = &Schema{Fields: []Field{
	{Name: "id", Kind: KindInt, Required: true, Rules: []Rule{
		Min(1, "id must be a positive integer"),
	}},
}}

// ProductList is the query schema for GET /api/products. sortBy and
// sortOrder are validated and defaulted but deliberately not forwarded
// to the store; the observed calling contract never passes them down.
var ProductList = &Schema{Fields: []Field{
	{Name: "pageNumber", Kind: KindInt, Default: 1, Rules: []Rule{
		Min(1, "pageNumber must be at least 1"),
	}},
	{Name: "pageSize", Kind: KindInt, Default: 10, Rules: []Rule{
		Min(1, "pageSize must be at least 1"),
		Max(100, "pageSize must be at most 100"),
	}},
	{Name: "category", Kind: KindString, Rules: []Rule{
		MaxLen(100, "category must be at most 100 characters"),
	}},
	{Name: "searchTerm", Kind: KindString, Rules: []Rule{
		MaxLen(255, "searchTerm must be at most 255 characters"),
	}},
	{Name: "sortBy", Kind: KindString, Default: "createdAt", Rules: []Rule{
		OneOf("sortBy must be one of name, price, category, createdAt", "name", "price", "category", "createdAt"),
	}},
	{Name: "sortOrder", Kind: KindString, Default: "desc", Rules: []Rule{
		OneOf("sortOrder must be asc or desc", "asc", "desc"),
	}},
	{Name: "minPrice", Kind: KindFloat, Rules: []Rule{
		Min(0, "minPrice must be at least 0"),
	}},
	{Name: "maxPrice", Kind: KindFloat, Rules: []Rule{
		Min(0, "maxPrice must be at least 0"),
		GTEField("minPrice", "maxPrice must be greater than or equal to minPrice"),
	}},
}}

// ProductSearch is the query schema for GET /api/products/search.
var ProductSearch = &Schema{Fields: []Field{
	{Name: "q", Kind: KindString, Required: true, Rules: []Rule{
		MaxLen(255, "q must be at most 255 characters"),
	}},
	{Name: "limit", Kind: KindInt, Default: 10, Rules: []Rule{
		Min(1, "limit must be at least 1"),
		Max(100, "limit must be at most 100"),
	}},
}}
