package models

import "time"

// Product is a manufacturing order line: one garment style with its
// PO quantity and the NPL input / FCR output dates.
type Product struct {
	ID            int64      `json:"id"`
	ProductCode   string     `json:"productCode"`
	QuantityPO    int        `json:"quantityPO"`
	DateInputNPL  *time.Time `json:"dateInputNPL,omitempty"`
	DateOutputFCR *time.Time `json:"dateOutputFCR,omitempty"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Color is a catalog color usable on products.
type Color struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	HexColor  string    `json:"hexColor"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Group is a production group.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Print is a printable place on a garment.
type Print struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccessoryNote is a reusable remark attached to garment accessories.
type AccessoryNote struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GarmentAccessory tracks accessory preparation for a product.
type GarmentAccessory struct {
	ID                  int64      `json:"id"`
	ProductID           int64      `json:"productID"`
	AmountCutting       int        `json:"amountCutting"`
	PassingDeliveryDate *time.Time `json:"passingDeliveryDate,omitempty"`
	Status              Status     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// GarmentAccessoryNote links an accessory note to a garment accessory.
// (garment_accessory_id, accessory_note_id) is the natural key used by
// the bulk replace operation.
type GarmentAccessoryNote struct {
	ID                 int64     `json:"id"`
	GarmentAccessoryID int64     `json:"garmentAccessoryID"`
	AccessoryNoteID    int64     `json:"accessoryNoteID"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// SewingLine is a physical sewing line in the factory.
type SewingLine struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SewingLineDelivery assigns part of a product's quantity to a sewing
// line. (product_id, sewing_line_id) is the natural key used by the
// bulk replace operation.
type SewingLineDelivery struct {
	ID               int64      `json:"id"`
	SewingLineID     int64      `json:"sewingLineID"`
	ProductID        int64      `json:"productID"`
	QuantityOriginal int        `json:"quantityOriginal"`
	QuantitySewed    int        `json:"quantitySewed"`
	ExpiredDate      *time.Time `json:"expiredDate,omitempty"`
	Status           Status     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Importation records a material import for a product.
type Importation struct {
	ID           int64      `json:"id"`
	ProductID    int64      `json:"productID"`
	Quantity     int        `json:"quantity"`
	DateImported *time.Time `json:"dateImported,omitempty"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Role is a named permission group.
type Role struct {
	ID          int64     `json:"id"`
	Role        string    `json:"role"`
	ShortName   string    `json:"shortName"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserRole links a user to a role. (user_id, role_id) is the natural
// key used by the bulk replace operation.
type UserRole struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userID"`
	RoleID    int64     `json:"roleID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
