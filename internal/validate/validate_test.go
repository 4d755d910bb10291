package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_CoercesAndDefaults(t *testing.T) {
	t.Parallel()

	out, violations := ProductList.Apply(map[string]any{
		"pageNumber": "2",
		"pageSize":   "25",
		"minPrice":   "10.5",
	})

	require.Empty(t, violations)
	assert.Equal(t, 2, out["pageNumber"])
	assert.Equal(t, 25, out["pageSize"])
	assert.Equal(t, 10.5, out["minPrice"])
	// Defaults applied for absent optional fields.
	assert.Equal(t, "createdAt", out["sortBy"])
	assert.Equal(t, "desc", out["sortOrder"])
}

func TestApply_StripsUnknownFields(t *testing.T) {
	t.Parallel()

	out, violations := Login.Apply(map[string]any{
		"username": "johndoe",
		"password": "SecurePass123!",
		"isAdmin":  true,
	})

	require.Empty(t, violations)
	_, present := out["isAdmin"]
	assert.False(t, present, "unknown fields must be dropped silently")
}

func TestApply_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	// Empty name and negative price must each yield a message; validation
	// never stops at the first failure.
	_, violations := ProductCreate.Apply(map[string]any{
		"name":     "",
		"price":    float64(-10),
		"category": "Electronics",
	})

	require.GreaterOrEqual(t, len(violations), 2)
	assert.Contains(t, violations, "name is required")
	assert.Contains(t, violations, "price must be greater than 0")
}

func TestApply_RequiredMissing(t *testing.T) {
	t.Parallel()

	_, violations := Register.Apply(map[string]any{})

	assert.Contains(t, violations, "username is required")
	assert.Contains(t, violations, "email is required")
	assert.Contains(t, violations, "password is required")
}

func TestApply_CrossFieldPriceBounds(t *testing.T) {
	t.Parallel()

	_, violations := ProductList.Apply(map[string]any{
		"minPrice": "100",
		"maxPrice": "50",
	})
	assert.Contains(t, violations, "maxPrice must be greater than or equal to minPrice")

	_, violations = ProductList.Apply(map[string]any{
		"minPrice": "50",
		"maxPrice": "100",
	})
	assert.Empty(t, violations)

	// maxPrice alone is fine; the cross-field rule only fires when both
	// bounds are present.
	_, violations = ProductList.Apply(map[string]any{"maxPrice": "100"})
	assert.Empty(t, violations)
}

func TestApply_PriceDecimalPlaces(t *testing.T) {
	t.Parallel()

	_, violations := ProductCreate.Apply(map[string]any{
		"name":     "Widget",
		"price":    12.999,
		"category": "Tools",
	})
	assert.Contains(t, violations, "price may have at most 2 decimal places")

	_, violations = ProductCreate.Apply(map[string]any{
		"name":     "Widget",
		"price":    149.99,
		"category": "Tools",
	})
	assert.Empty(t, violations)
}

func TestApply_TypeMismatch(t *testing.T) {
	t.Parallel()

	_, violations := ProductCreate.Apply(map[string]any{
		"name":     "Widget",
		"price":    "cheap",
		"category": "Tools",
	})
	assert.Contains(t, violations, "price must be a number")
}

func TestApply_EnumMembership(t *testing.T) {
	t.Parallel()

	_, violations := ProductList.Apply(map[string]any{"sortOrder": "sideways"})
	assert.Contains(t, violations, "sortOrder must be asc or desc")
}

func TestApply_EmptyStringPreservedForOptional(t *testing.T) {
	t.Parallel()

	// An explicitly empty description on update must survive into the
	// output so the merge can distinguish it from "not provided".
	out, violations := ProductUpdate.Apply(map[string]any{"description": ""})
	require.Empty(t, violations)
	v, present := out["description"]
	require.True(t, present)
	assert.Equal(t, "", v)

	out, _ = ProductUpdate.Apply(map[string]any{})
	_, present = out["description"]
	assert.False(t, present)
}

func TestApply_IDParam(t *testing.T) {
	t.Parallel()

	out, violations := IDParam.Apply(map[string]any{"id": "42"})
	require.Empty(t, violations)
	assert.Equal(t, 42, out["id"])

	_, violations = IDParam.Apply(map[string]any{"id": "abc"})
	assert.Contains(t, violations, "id must be an integer")

	_, violations = IDParam.Apply(map[string]any{"id": "0"})
	assert.Contains(t, violations, "id must be a positive integer")
}

func TestApply_LengthBoundsCountCharacters(t *testing.T) {
	t.Parallel()

	// 200 two-byte characters: 400 bytes, well inside the 255-character
	// name limit.
	name := strings.Repeat("ü", 200)
	out, violations := ProductCreate.Apply(map[string]any{
		"name":     name,
		"price":    9.99,
		"category": "Tools",
	})
	require.Empty(t, violations)
	assert.Equal(t, name, out["name"])

	_, violations = ProductCreate.Apply(map[string]any{
		"name":     strings.Repeat("ü", 256),
		"price":    9.99,
		"category": "Tools",
	})
	assert.Contains(t, violations, "name must be at most 255 characters")

	// Six multibyte characters are twelve bytes; the eight-character
	// password minimum must still reject them.
	_, violations = Register.Apply(map[string]any{
		"username": "abc",
		"email":    "abc@example.com",
		"password": "пароль",
	})
	assert.Contains(t, violations, "password must be at least 8 characters")
}
