package domain

import "github.com/google/uuid"

type ClientDTO struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	RUT           string       `json:"rut"`
	Email         string       `json:"email,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Address       string       `json:"address,omitempty"`
	City          string       `json:"city,omitempty"`
	ContactPerson string       `json:"contactPerson,omitempty"`
	ContactEmail  string       `json:"contactEmail,omitempty"`
	Status        ClientStatus `json:"status"`
	Industries    []string     `json:"industries,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	ActiveQuotes  int          `json:"activeQuotes,omitempty"`
	CreatedAt     string       `json:"createdAt"` // ISO 8601
	UpdatedAt     string       `json:"updatedAt"` // ISO 8601
}

type CreateClientRequest struct {
	Name          string       `json:"name" validate:"required,max=200"`
	RUT           string       `json:"rut" validate:"required,max=20"`
	Email         string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string       `json:"phone,omitempty" validate:"max=50"`
	Address       string       `json:"address,omitempty" validate:"max=500"`
	City          string       `json:"city,omitempty" validate:"max=100"`
	ContactPerson string       `json:"contactPerson,omitempty" validate:"max=200"`
	ContactEmail  string       `json:"contactEmail,omitempty" validate:"omitempty,email"`
	Status        ClientStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive prospect"`
	Industries    []string     `json:"industries,omitempty"`
	Notes         string       `json:"notes,omitempty" validate:"max=2000"`
}

type UpdateClientRequest struct {
	Name          string       `json:"name" validate:"required,max=200"`
	RUT           string       `json:"rut" validate:"required,max=20"`
	Email         string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string       `json:"phone,omitempty" validate:"max=50"`
	Address       string       `json:"address,omitempty" validate:"max=500"`
	City          string       `json:"city,omitempty" validate:"max=100"`
	ContactPerson string       `json:"contactPerson,omitempty" validate:"max=200"`
	ContactEmail  string       `json:"contactEmail,omitempty" validate:"omitempty,email"`
	Status        ClientStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive prospect"`
	Industries    []string     `json:"industries,omitempty"`
	Notes         string       `json:"notes,omitempty" validate:"max=2000"`
}

type CatalogItemDTO struct {
	ID                uuid.UUID       `json:"id"`
	Type              CatalogItemType `json:"type"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	BasePrice         float64         `json:"basePrice"`
	IsDefault         bool            `json:"isDefault"`
	DefaultVisibility Visibility      `json:"defaultVisibility"`
	IsActive          bool            `json:"isActive"`
	ERPReference      string          `json:"erpReference,omitempty"`
	ERPSyncedAt       *string         `json:"erpSyncedAt,omitempty"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
}

type CreateCatalogItemRequest struct {
	Type              CatalogItemType `json:"type" validate:"required"`
	Name              string          `json:"name" validate:"required,max=200"`
	Unit              string          `json:"unit,omitempty" validate:"max=50"`
	BasePrice         float64         `json:"basePrice" validate:"gte=0"`
	IsDefault         bool            `json:"isDefault"`
	DefaultVisibility Visibility      `json:"defaultVisibility,omitempty" validate:"omitempty,oneof=visible hidden"`
	ERPReference      string          `json:"erpReference,omitempty" validate:"max=100"`
}

type UpdateCatalogItemRequest struct {
	Name              string     `json:"name" validate:"required,max=200"`
	Unit              string     `json:"unit,omitempty" validate:"max=50"`
	BasePrice         float64    `json:"basePrice" validate:"gte=0"`
	IsDefault         bool       `json:"isDefault"`
	DefaultVisibility Visibility `json:"defaultVisibility,omitempty" validate:"omitempty,oneof=visible hidden"`
	IsActive          *bool      `json:"isActive,omitempty"`
	ERPReference      string     `json:"erpReference,omitempty" validate:"max=100"`
}

type QuoteDTO struct {
	ID               uuid.UUID   `json:"id"`
	Title            string      `json:"title"`
	ClientID         uuid.UUID   `json:"clientId"`
	ClientName       string      `json:"clientName,omitempty"`
	Status           QuoteStatus `json:"status"`
	Currency         string      `json:"currency"`
	OwnerID          string      `json:"ownerId"`
	OwnerName        string      `json:"ownerName,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	LostReason       string      `json:"lostReason,omitempty"`
	MonthlyTotal     float64     `json:"monthlyTotal"`
	SalePriceMonthly float64     `json:"salePriceMonthly"`
	SentAt           *string     `json:"sentAt,omitempty"`
	ClosedAt         *string     `json:"closedAt,omitempty"`
	CreatedAt        string      `json:"createdAt"`
	UpdatedAt        string      `json:"updatedAt"`
}

type CreateQuoteRequest struct {
	Title    string    `json:"title" validate:"required,max=200"`
	ClientID uuid.UUID `json:"clientId" validate:"required"`
	Currency string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	Notes    string    `json:"notes,omitempty" validate:"max=2000"`
}

type UpdateQuoteRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Notes string `json:"notes,omitempty" validate:"max=2000"`
}

type LoseQuoteRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type QuoteCostItemDTO struct {
	ID                uuid.UUID       `json:"id"`
	QuoteID           uuid.UUID       `json:"quoteId"`
	CatalogItemID     uuid.UUID       `json:"catalogItemId"`
	CatalogItemName   string          `json:"catalogItemName,omitempty"`
	CatalogItemType   CatalogItemType `json:"catalogItemType,omitempty"`
	CalcMode          CalcMode        `json:"calcMode"`
	Quantity          *float64        `json:"quantity,omitempty"`
	UnitPriceOverride *float64        `json:"unitPriceOverride,omitempty"`
	EffectiveUnit     string          `json:"effectiveUnit,omitempty"`
	IsEnabled         bool            `json:"isEnabled"`
	Visibility        Visibility      `json:"visibility"`
	Notes             string          `json:"notes,omitempty"`
}

type UpsertQuoteCostItemRequest struct {
	CatalogItemID     uuid.UUID  `json:"catalogItemId" validate:"required"`
	CalcMode          CalcMode   `json:"calcMode" validate:"required,oneof=per_month per_guard"`
	Quantity          *float64   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	UnitPriceOverride *float64   `json:"unitPriceOverride,omitempty" validate:"omitempty,gte=0"`
	IsEnabled         *bool      `json:"isEnabled,omitempty"`
	Visibility        Visibility `json:"visibility,omitempty" validate:"omitempty,oneof=visible hidden"`
	Notes             string     `json:"notes,omitempty" validate:"max=2000"`
}

type QuoteSelectionItemDTO struct {
	ID                uuid.UUID `json:"id"`
	QuoteID           uuid.UUID `json:"quoteId"`
	CatalogItemID     uuid.UUID `json:"catalogItemId"`
	CatalogItemName   string    `json:"catalogItemName,omitempty"`
	BasePrice         float64   `json:"basePrice,omitempty"`
	UnitPriceOverride *float64  `json:"unitPriceOverride,omitempty"`
	Active            bool      `json:"active"`
}

type UpsertQuoteSelectionItemRequest struct {
	CatalogItemID     uuid.UUID `json:"catalogItemId" validate:"required"`
	UnitPriceOverride *float64  `json:"unitPriceOverride,omitempty" validate:"omitempty,gte=0"`
	Active            *bool     `json:"active,omitempty"`
}

type QuoteMealDTO struct {
	ID            uuid.UUID `json:"id"`
	QuoteID       uuid.UUID `json:"quoteId"`
	MealType      string    `json:"mealType"`
	MealsPerDay   float64   `json:"mealsPerDay"`
	DaysOfService float64   `json:"daysOfService"`
	PriceOverride *float64  `json:"priceOverride,omitempty"`
	IsEnabled     bool      `json:"isEnabled"`
}

type UpsertQuoteMealRequest struct {
	MealType      string   `json:"mealType" validate:"required,max=100"`
	MealsPerDay   float64  `json:"mealsPerDay" validate:"gte=0"`
	DaysOfService float64  `json:"daysOfService" validate:"gte=0"`
	PriceOverride *float64 `json:"priceOverride,omitempty" validate:"omitempty,gte=0"`
	IsEnabled     *bool    `json:"isEnabled,omitempty"`
}

type QuoteVehicleDTO struct {
	ID                 uuid.UUID `json:"id"`
	QuoteID            uuid.UUID `json:"quoteId"`
	Description        string    `json:"description,omitempty"`
	IsEnabled          bool      `json:"isEnabled"`
	VehiclesCount      float64   `json:"vehiclesCount"`
	RentMonthly        float64   `json:"rentMonthly"`
	MaintenanceMonthly float64   `json:"maintenanceMonthly"`
	KmPerDay           float64   `json:"kmPerDay"`
	DaysPerMonth       float64   `json:"daysPerMonth"`
	KmPerLiter         float64   `json:"kmPerLiter"`
	FuelPrice          float64   `json:"fuelPrice"`
	MonthlyCost        float64   `json:"monthlyCost"`
}

type UpsertQuoteVehicleRequest struct {
	Description        string  `json:"description,omitempty" validate:"max=200"`
	IsEnabled          *bool   `json:"isEnabled,omitempty"`
	VehiclesCount      float64 `json:"vehiclesCount" validate:"gte=0"`
	RentMonthly        float64 `json:"rentMonthly" validate:"gte=0"`
	MaintenanceMonthly float64 `json:"maintenanceMonthly" validate:"gte=0"`
	KmPerDay           float64 `json:"kmPerDay" validate:"gte=0"`
	DaysPerMonth       float64 `json:"daysPerMonth" validate:"gte=0,lte=31"`
	KmPerLiter         float64 `json:"kmPerLiter" validate:"gte=0"`
	FuelPrice          float64 `json:"fuelPrice" validate:"gte=0"`
}

type QuoteInfrastructureDTO struct {
	ID                uuid.UUID `json:"id"`
	QuoteID           uuid.UUID `json:"quoteId"`
	Description       string    `json:"description,omitempty"`
	IsEnabled         bool      `json:"isEnabled"`
	Quantity          float64   `json:"quantity"`
	RentMonthly       float64   `json:"rentMonthly"`
	HasFuel           bool      `json:"hasFuel"`
	FuelLitersPerHour float64   `json:"fuelLitersPerHour"`
	FuelHoursPerDay   float64   `json:"fuelHoursPerDay"`
	FuelDaysPerMonth  float64   `json:"fuelDaysPerMonth"`
	FuelPrice         float64   `json:"fuelPrice"`
	MonthlyCost       float64   `json:"monthlyCost"`
}

type UpsertQuoteInfrastructureRequest struct {
	Description       string  `json:"description,omitempty" validate:"max=200"`
	IsEnabled         *bool   `json:"isEnabled,omitempty"`
	Quantity          float64 `json:"quantity" validate:"gte=0"`
	RentMonthly       float64 `json:"rentMonthly" validate:"gte=0"`
	HasFuel           bool    `json:"hasFuel"`
	FuelLitersPerHour float64 `json:"fuelLitersPerHour" validate:"gte=0"`
	FuelHoursPerDay   float64 `json:"fuelHoursPerDay" validate:"gte=0,lte=24"`
	FuelDaysPerMonth  float64 `json:"fuelDaysPerMonth" validate:"gte=0,lte=31"`
	FuelPrice         float64 `json:"fuelPrice" validate:"gte=0"`
}

type QuoteParametersDTO struct {
	QuoteID                  uuid.UUID `json:"quoteId"`
	MonthlyHoursStandard     float64   `json:"monthlyHoursStandard"`
	AvgStayMonths            float64   `json:"avgStayMonths"`
	UniformChangesPerYear    float64   `json:"uniformChangesPerYear"`
	MonthlyHolidayAdjustment float64   `json:"monthlyHolidayAdjustment"`
	MarginPct                float64   `json:"marginPct"`
	FinancialEnabled         bool      `json:"financialEnabled"`
	FinancialRatePct         float64   `json:"financialRatePct"`
	SalePriceBase            float64   `json:"salePriceBase"`
	SalePriceMonthly         float64   `json:"salePriceMonthly"`
	PolicyEnabled            bool      `json:"policyEnabled"`
	PolicyRatePct            float64   `json:"policyRatePct"`
	PolicyAdminRatePct       float64   `json:"policyAdminRatePct"`
	PolicyContractMonths     float64   `json:"policyContractMonths"`
	PolicyContractPct        float64   `json:"policyContractPct"`
	ContractMonths           float64   `json:"contractMonths"`
	ContractAmount           float64   `json:"contractAmount"`
}

type UpdateQuoteParametersRequest struct {
	MonthlyHoursStandard     float64 `json:"monthlyHoursStandard" validate:"gte=0"`
	AvgStayMonths            float64 `json:"avgStayMonths" validate:"gte=0"`
	UniformChangesPerYear    float64 `json:"uniformChangesPerYear" validate:"gte=0"`
	MonthlyHolidayAdjustment float64 `json:"monthlyHolidayAdjustment" validate:"gte=0"`
	MarginPct                float64 `json:"marginPct" validate:"gte=0,lte=100"`
	FinancialEnabled         bool    `json:"financialEnabled"`
	FinancialRatePct         float64 `json:"financialRatePct" validate:"gte=0,lte=100"`
	SalePriceBase            float64 `json:"salePriceBase" validate:"gte=0"`
	PolicyEnabled            bool    `json:"policyEnabled"`
	PolicyRatePct            float64 `json:"policyRatePct" validate:"gte=0,lte=100"`
	PolicyAdminRatePct       float64 `json:"policyAdminRatePct" validate:"gte=0,lte=100"`
	PolicyContractMonths     float64 `json:"policyContractMonths" validate:"gte=0"`
	PolicyContractPct        float64 `json:"policyContractPct" validate:"gte=0,lte=100"`
	ContractMonths           float64 `json:"contractMonths" validate:"gte=0"`
	ContractAmount           float64 `json:"contractAmount" validate:"gte=0"`
}

type PositionDTO struct {
	ID                  uuid.UUID `json:"id"`
	QuoteID             uuid.UUID `json:"quoteId"`
	Name                string    `json:"name"`
	NumGuards           int       `json:"numGuards"`
	NumPuestos          int       `json:"numPuestos"`
	MonthlyPositionCost float64   `json:"monthlyPositionCost"`
	AllocatedSalePrice  float64   `json:"allocatedSalePrice"`
	HourlyRate          float64   `json:"hourlyRate"`
	DisplayOrder        int       `json:"displayOrder"`
}

type UpsertPositionRequest struct {
	Name                string  `json:"name" validate:"required,max=200"`
	NumGuards           int     `json:"numGuards" validate:"gte=0"`
	NumPuestos          int     `json:"numPuestos" validate:"gte=0"`
	MonthlyPositionCost float64 `json:"monthlyPositionCost" validate:"gte=0"`
	DisplayOrder        int     `json:"displayOrder" validate:"gte=0"`
}

// CostSummaryDTO is the engine output exposed over the API
type CostSummaryDTO struct {
	TotalGuards              int                     `json:"totalGuards"`
	MonthlyPositions         float64                 `json:"monthlyPositions"`
	MonthlyHolidayAdjustment float64                 `json:"monthlyHolidayAdjustment"`
	MonthlyUniforms          float64                 `json:"monthlyUniforms"`
	MonthlyExams             float64                 `json:"monthlyExams"`
	MonthlyMeals             float64                 `json:"monthlyMeals"`
	MonthlyVehicles          float64                 `json:"monthlyVehicles"`
	MonthlyInfrastructure    float64                 `json:"monthlyInfrastructure"`
	MonthlyEquipment         float64                 `json:"monthlyEquipment"`
	MonthlyTransport         float64                 `json:"monthlyTransport"`
	MonthlySystem            float64                 `json:"monthlySystem"`
	MonthlyExtras            float64                 `json:"monthlyExtras"`
	MonthlyTotal             float64                 `json:"monthlyTotal"`
	MonthlyFinancial         float64                 `json:"monthlyFinancial"`
	MonthlyPolicy            float64                 `json:"monthlyPolicy"`
	SalePriceBase            float64                 `json:"salePriceBase"`
	SalePriceMonthly         float64                 `json:"salePriceMonthly"`
	Allocations              []PositionAllocationDTO `json:"allocations,omitempty"`
}

type PositionAllocationDTO struct {
	PositionID         uuid.UUID `json:"positionId"`
	AllocatedSalePrice float64   `json:"allocatedSalePrice"`
	HourlyRate         float64   `json:"hourlyRate"`
}

// QuoteDetailDTO bundles a quote with its full input snapshot and the
// freshly computed summary
type QuoteDetailDTO struct {
	Quote          QuoteDTO                 `json:"quote"`
	Parameters     QuoteParametersDTO       `json:"parameters"`
	CostItems      []QuoteCostItemDTO       `json:"costItems"`
	Uniforms       []QuoteSelectionItemDTO  `json:"uniforms"`
	Exams          []QuoteSelectionItemDTO  `json:"exams"`
	Meals          []QuoteMealDTO           `json:"meals"`
	Vehicles       []QuoteVehicleDTO        `json:"vehicles"`
	Infrastructure []QuoteInfrastructureDTO `json:"infrastructure"`
	Positions      []PositionDTO            `json:"positions"`
	Summary        CostSummaryDTO           `json:"summary"`
}

type GlobalSettingsDTO struct {
	MonthlyHoursStandard  float64 `json:"monthlyHoursStandard"`
	AvgStayMonths         float64 `json:"avgStayMonths"`
	UniformChangesPerYear float64 `json:"uniformChangesPerYear"`
	MarginPct             float64 `json:"marginPct"`
	FinancialRatePct      float64 `json:"financialRatePct"`
	PolicyRatePct         float64 `json:"policyRatePct"`
	PolicyAdminRatePct    float64 `json:"policyAdminRatePct"`
	PolicyContractPct     float64 `json:"policyContractPct"`
	UpdatedAt             string  `json:"updatedAt"`
}

type UpdateGlobalSettingsRequest struct {
	MonthlyHoursStandard  float64 `json:"monthlyHoursStandard" validate:"gte=0"`
	AvgStayMonths         float64 `json:"avgStayMonths" validate:"gte=0"`
	UniformChangesPerYear float64 `json:"uniformChangesPerYear" validate:"gte=0"`
	MarginPct             float64 `json:"marginPct" validate:"gte=0,lte=100"`
	FinancialRatePct      float64 `json:"financialRatePct" validate:"gte=0,lte=100"`
	PolicyRatePct         float64 `json:"policyRatePct" validate:"gte=0,lte=100"`
	PolicyAdminRatePct    float64 `json:"policyAdminRatePct" validate:"gte=0,lte=100"`
	PolicyContractPct     float64 `json:"policyContractPct" validate:"gte=0,lte=100"`
}

type ActivityDTO struct {
	ID          uuid.UUID          `json:"id"`
	TargetType  ActivityTargetType `json:"targetType"`
	TargetID    uuid.UUID          `json:"targetId"`
	Title       string             `json:"title"`
	Body        string             `json:"body,omitempty"`
	OccurredAt  string             `json:"occurredAt"`
	CreatorID   string             `json:"creatorId,omitempty"`
	CreatorName string             `json:"creatorName,omitempty"`
}

type FileDTO struct {
	ID          uuid.UUID  `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	QuoteID     *uuid.UUID `json:"quoteId,omitempty"`
	CreatedAt   string     `json:"createdAt"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
