package domain

// Role is the category a retail system belongs to
type Role string

const (
	RoleChannel     Role = "channel"     // Customer-facing sales channels
	RolePayment     Role = "payment"     // Payment service providers
	RoleCore        Role = "core"        // Order and resource planning
	RoleFulfillment Role = "fulfillment" // Warehouse operations
	RoleLogistics   Role = "logistics"   // Carriers and last mile
	RoleCustomer    Role = "customer"    // CRM and support desks
	RoleInsight     Role = "insight"     // Analytics and reporting
)

// roleColors maps each role to the node fill color used by the page
var roleColors = map[Role]string{
	RoleChannel:     "#0ea5e9",
	RolePayment:     "#a855f7",
	RoleCore:        "#2563eb",
	RoleFulfillment: "#f59e0b",
	RoleLogistics:   "#ef4444",
	RoleCustomer:    "#10b981",
	RoleInsight:     "#64748b",
}

// Roles returns every known role in display order
func Roles() []Role {
	return []Role{
		RoleChannel,
		RolePayment,
		RoleCore,
		RoleFulfillment,
		RoleLogistics,
		RoleCustomer,
		RoleInsight,
	}
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := roleColors[r]
	return ok
}

// Color returns the fill color for the role, grey for unknown roles
func (r Role) Color() string {
	if c, ok := roleColors[r]; ok {
		return c
	}
	return "#9ca3af"
}

// Node is one system in the diagram. All fields are static data.
type Node struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Label       string `json:"label" yaml:"label" toml:"label"`
	Role        Role   `json:"role" yaml:"role" toml:"role"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
}

// NewNode creates a node
func NewNode(id, label string, role Role, description string) Node {
	return Node{
		ID:          id,
		Label:       label,
		Role:        role,
		Description: description,
	}
}
