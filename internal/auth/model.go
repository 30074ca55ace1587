package auth

const RoleKitchen = "KITCHEN"

// Staff is a kitchen or counter employee allowed into the admin views.
type Staff struct {
	ID       string
	Name     string
	Password string
	Role     string
}
