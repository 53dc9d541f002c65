package api

import "time"

// UpdateProductRequest is the body of PUT /api/v1/products/{id}.
// Omitted fields are left unchanged.
type UpdateProductRequest struct {
	ProductCode   *string    `json:"productCode,omitempty"`
	QuantityPO    *int       `json:"quantityPO,omitempty"`
	DateInputNPL  *time.Time `json:"dateInputNPL,omitempty"`
	DateOutputFCR *time.Time `json:"dateOutputFCR,omitempty"`
	Status        *string    `json:"status,omitempty"`
}

// UpdateColorRequest is the body of PUT /api/v1/colors/{id}.
// Omitted fields are left unchanged.
type UpdateColorRequest struct {
	Name     *string `json:"name,omitempty"`
	HexColor *string `json:"hexColor,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// UpdateGroupRequest is the body of PUT /api/v1/groups/{id}.
// Omitted fields are left unchanged.
type UpdateGroupRequest struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
}

// UpdatePrintRequest is the body of PUT /api/v1/prints/{id}.
// Omitted fields are left unchanged.
type UpdatePrintRequest struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
}

// UpdateGarmentAccessoryRequest is the body of
// PUT /api/v1/garment-accessories/{id}. Omitted fields are left
// unchanged.
type UpdateGarmentAccessoryRequest struct {
	ProductID           *int64     `json:"productID,omitempty"`
	AmountCutting       *int       `json:"amountCutting,omitempty"`
	PassingDeliveryDate *time.Time `json:"passingDeliveryDate,omitempty"`
	Status              *string    `json:"status,omitempty"`
}

// UpdateAccessoryNoteRequest is the body of
// PUT /api/v1/accessory-notes/{id}. Omitted fields are left unchanged.
type UpdateAccessoryNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Summary *string `json:"summary,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// UpdateSewingLineRequest is the body of PUT /api/v1/sewing-lines/{id}.
// Omitted fields are left unchanged.
type UpdateSewingLineRequest struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
}

// UpdateSewingLineDeliveryRequest is the body of
// PUT /api/v1/sewing-line-deliveries/{id}. Omitted fields are left
// unchanged.
type UpdateSewingLineDeliveryRequest struct {
	SewingLineID     *int64     `json:"sewingLineID,omitempty"`
	ProductID        *int64     `json:"productID,omitempty"`
	QuantityOriginal *int       `json:"quantityOriginal,omitempty"`
	QuantitySewed    *int       `json:"quantitySewed,omitempty"`
	ExpiredDate      *time.Time `json:"expiredDate,omitempty"`
	Status           *string    `json:"status,omitempty"`
}

// UpdateImportationRequest is the body of PUT /api/v1/importations/{id}.
// Omitted fields are left unchanged.
type UpdateImportationRequest struct {
	ProductID    *int64     `json:"productID,omitempty"`
	Quantity     *int       `json:"quantity,omitempty"`
	DateImported *time.Time `json:"dateImported,omitempty"`
	Status       *string    `json:"status,omitempty"`
}

// AccessoryNoteItem is one element of the note-set replace body.
type AccessoryNoteItem struct {
	AccessoryNoteID int64 `json:"accessoryNoteID"`
}

// ReplaceAccessoryNotesRequest is the body of
// PUT /api/v1/garment-accessory-notes/garmentAccessoryID/{garmentAccessoryID}.
type ReplaceAccessoryNotesRequest struct {
	Items []AccessoryNoteItem `json:"items"`
}

// DeliveryItem is one element of the delivery-set replace body.
type DeliveryItem struct {
	SewingLineID     int64      `json:"sewingLineID"`
	QuantityOriginal int        `json:"quantityOriginal"`
	QuantitySewed    int        `json:"quantitySewed"`
	ExpiredDate      *time.Time `json:"expiredDate,omitempty"`
}

// ReplaceDeliveriesRequest is the body of
// PUT /api/v1/sewing-line-deliveries/productID/{productID}.
type ReplaceDeliveriesRequest struct {
	Items []DeliveryItem `json:"items"`
}
