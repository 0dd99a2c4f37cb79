package models

type Role string

const (
	RoleGuest        Role = "guest"
	RoleCustomer     Role = "customer"
	RoleAdmin        Role = "admin"
	RoleSupportStaff Role = "support_staff"
	RoleShipper      Role = "shipper"
	RoleCaretaker    Role = "caretaker"
)
