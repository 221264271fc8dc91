package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate generates the primary key client-side so inserts work
// the same against postgres and the sqlite test databases.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ClientStatus represents the status of a client account
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusProspect ClientStatus = "prospect"
)

// Client represents an organization we quote guard services for
type Client struct {
	BaseModel
	Name          string         `gorm:"type:varchar(200);not null;index"`
	RUT           string         `gorm:"type:varchar(20);unique;index;column:rut"` // Chilean tax ID
	Email         string         `gorm:"type:varchar(255)"`
	Phone         string         `gorm:"type:varchar(50)"`
	Address       string         `gorm:"type:varchar(500)"`
	City          string         `gorm:"type:varchar(100)"`
	ContactPerson string         `gorm:"type:varchar(200);column:contact_person"`
	ContactEmail  string         `gorm:"type:varchar(255);column:contact_email"`
	Status        ClientStatus   `gorm:"type:varchar(50);not null;default:'active';index"`
	Industries    pq.StringArray `gorm:"type:text[]"`
	Notes         string         `gorm:"type:text"`
	Quotes        []Quote        `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// CatalogItemType classifies a catalog entry and drives which cost
// category its quote line items are aggregated into.
type CatalogItemType string

const (
	CatalogTypePhone          CatalogItemType = "phone"
	CatalogTypeRadio          CatalogItemType = "radio"
	CatalogTypeFlashlight     CatalogItemType = "flashlight"
	CatalogTypeTransport      CatalogItemType = "transport"
	CatalogTypeVehicleRent    CatalogItemType = "vehicle_rent"
	CatalogTypeVehicleFuel    CatalogItemType = "vehicle_fuel"
	CatalogTypeVehicleTag     CatalogItemType = "vehicle_tag"
	CatalogTypeInfrastructure CatalogItemType = "infrastructure"
	CatalogTypeFuel           CatalogItemType = "fuel"
	CatalogTypeSystem         CatalogItemType = "system"
	CatalogTypeUniform        CatalogItemType = "uniform"
	CatalogTypeExam           CatalogItemType = "exam"
	CatalogTypeMeal           CatalogItemType = "meal"
	CatalogTypeFinancial      CatalogItemType = "financial"
	CatalogTypePolicy         CatalogItemType = "policy"
)

// IsValid checks if the CatalogItemType is a valid enum value
func (t CatalogItemType) IsValid() bool {
	switch t {
	case CatalogTypePhone, CatalogTypeRadio, CatalogTypeFlashlight,
		CatalogTypeTransport, CatalogTypeVehicleRent, CatalogTypeVehicleFuel,
		CatalogTypeVehicleTag, CatalogTypeInfrastructure, CatalogTypeFuel,
		CatalogTypeSystem, CatalogTypeUniform, CatalogTypeExam,
		CatalogTypeMeal, CatalogTypeFinancial, CatalogTypePolicy:
		return true
	}
	return false
}

// Visibility controls whether a line appears in client-facing documents
type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

// CatalogItem is a reusable priced service/material definition shared
// across quotes. BasePrice is expressed in the item's Unit ("mes",
// "año", "semestre"); the pricing engine monthlizes it on use.
type CatalogItem struct {
	BaseModel
	Type              CatalogItemType `gorm:"type:varchar(50);not null;index"`
	Name              string          `gorm:"type:varchar(200);not null;index"`
	Unit              string          `gorm:"type:varchar(50);not null;default:'mes'"`
	BasePrice         float64         `gorm:"type:decimal(15,2);not null;default:0;column:base_price"`
	IsDefault         bool            `gorm:"not null;default:false;column:is_default"`
	DefaultVisibility Visibility      `gorm:"type:varchar(50);not null;default:'visible';column:default_visibility"`
	IsActive          bool            `gorm:"not null;default:true;column:is_active"`
	ERPReference      string          `gorm:"type:varchar(100);column:erp_reference"`
	ERPSyncedAt       *time.Time      `gorm:"column:erp_synced_at"`
}

// QuoteStatus represents the stage of a quote in the sales pipeline
type QuoteStatus string

const (
	QuoteStatusDraft QuoteStatus = "draft"
	QuoteStatusSent  QuoteStatus = "sent"
	QuoteStatusWon   QuoteStatus = "won"
	QuoteStatusLost  QuoteStatus = "lost"
)

// Quote represents a guard-services sales quote. MonthlyTotal and
// SalePriceMonthly are caches of the last engine run; the persisted
// cost inputs remain the source of truth and every input mutation
// triggers a recompute.
type Quote struct {
	BaseModel
	Title            string           `gorm:"type:varchar(200);not null;index"`
	ClientID         uuid.UUID        `gorm:"type:uuid;not null;index;column:client_id"`
	Client           *Client          `gorm:"foreignKey:ClientID"`
	ClientName       string           `gorm:"type:varchar(200);column:client_name"`
	Status           QuoteStatus      `gorm:"type:varchar(50);not null;default:'draft';index"`
	Currency         string           `gorm:"type:varchar(3);not null;default:'CLP'"`
	OwnerID          string           `gorm:"type:varchar(100);not null;column:owner_id"`
	OwnerName        string           `gorm:"type:varchar(200);column:owner_name"`
	Notes            string           `gorm:"type:text"`
	LostReason       string           `gorm:"type:varchar(500);column:lost_reason"`
	MonthlyTotal     float64          `gorm:"type:decimal(15,2);not null;default:0;column:monthly_total"`
	SalePriceMonthly float64          `gorm:"type:decimal(15,2);not null;default:0;column:sale_price_monthly"`
	SentAt           *time.Time       `gorm:"column:sent_at"`
	ClosedAt         *time.Time       `gorm:"column:closed_at"`
	Parameters       *QuoteParameters `gorm:"foreignKey:QuoteID"`
	CostItems        []QuoteCostItem  `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Positions        []Position       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Files            []File           `gorm:"foreignKey:QuoteID"`
}

// CalcMode determines whether a cost item's contribution scales with
// guard headcount or is a flat monthly amount.
type CalcMode string

const (
	CalcModePerMonth CalcMode = "per_month"
	CalcModePerGuard CalcMode = "per_guard"
)

// IsValid checks if the CalcMode is a valid enum value
func (m CalcMode) IsValid() bool {
	return m == CalcModePerMonth || m == CalcModePerGuard
}

// QuoteCostItem is a per-quote enable/override/quantity wrapper around
// a catalog item. Created lazily when a catalog entry is first enabled
// for the quote and soft-disabled via IsEnabled thereafter, never
// physically deleted by toggling.
type QuoteCostItem struct {
	BaseModel
	QuoteID           uuid.UUID    `gorm:"type:uuid;not null;index;column:quote_id;uniqueIndex:idx_quote_catalog"`
	CatalogItemID     uuid.UUID    `gorm:"type:uuid;not null;column:catalog_item_id;uniqueIndex:idx_quote_catalog"`
	CatalogItem       *CatalogItem `gorm:"foreignKey:CatalogItemID"`
	CalcMode          CalcMode     `gorm:"type:varchar(50);not null;default:'per_month';column:calc_mode"`
	Quantity          *float64     `gorm:"type:decimal(10,2)"`
	UnitPriceOverride *float64     `gorm:"type:decimal(15,2);column:unit_price_override"`
	IsEnabled         bool         `gorm:"not null;default:true;column:is_enabled"`
	Visibility        Visibility   `gorm:"type:varchar(50);not null;default:'visible'"`
	Notes             string       `gorm:"type:text"`
}

// QuoteUniformItem is a per-quote selection of a uniform catalog item.
// Cost is driven by the uniform-changes-per-year frequency, not by a
// quantity/calc-mode pair.
type QuoteUniformItem struct {
	BaseModel
	QuoteID           uuid.UUID    `gorm:"type:uuid;not null;index;column:quote_id"`
	CatalogItemID     uuid.UUID    `gorm:"type:uuid;not null;column:catalog_item_id"`
	CatalogItem       *CatalogItem `gorm:"foreignKey:CatalogItemID"`
	UnitPriceOverride *float64     `gorm:"type:decimal(15,2);column:unit_price_override"`
	Active            bool         `gorm:"not null;default:true"`
}

// QuoteExamItem is a per-quote selection of a medical/psychological
// exam catalog item, priced by guard turnover frequency.
type QuoteExamItem struct {
	BaseModel
	QuoteID           uuid.UUID    `gorm:"type:uuid;not null;index;column:quote_id"`
	CatalogItemID     uuid.UUID    `gorm:"type:uuid;not null;column:catalog_item_id"`
	CatalogItem       *CatalogItem `gorm:"foreignKey:CatalogItemID"`
	UnitPriceOverride *float64     `gorm:"type:decimal(15,2);column:unit_price_override"`
	Active            bool         `gorm:"not null;default:true"`
}

// QuoteMeal is a per-quote meal plan entry. MealType is matched
// case-insensitively against catalog "meal" item names.
type QuoteMeal struct {
	BaseModel
	QuoteID       uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	MealType      string    `gorm:"type:varchar(100);not null;column:meal_type"`
	MealsPerDay   float64   `gorm:"type:decimal(10,2);not null;default:0;column:meals_per_day"`
	DaysOfService float64   `gorm:"type:decimal(10,2);not null;default:0;column:days_of_service"`
	PriceOverride *float64  `gorm:"type:decimal(15,2);column:price_override"`
	IsEnabled     bool      `gorm:"not null;default:true;column:is_enabled"`
}

// QuoteVehicle is a dedicated (non-catalog) vehicle cost entry with a
// km-based fuel consumption sub-model. Additive with catalog-driven
// vehicle_rent/vehicle_fuel/vehicle_tag cost items.
type QuoteVehicle struct {
	BaseModel
	QuoteID            uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	Description        string    `gorm:"type:varchar(200)"`
	IsEnabled          bool      `gorm:"not null;default:true;column:is_enabled"`
	VehiclesCount      float64   `gorm:"type:decimal(10,2);not null;default:1;column:vehicles_count"`
	RentMonthly        float64   `gorm:"type:decimal(15,2);not null;default:0;column:rent_monthly"`
	MaintenanceMonthly float64   `gorm:"type:decimal(15,2);not null;default:0;column:maintenance_monthly"`
	KmPerDay           float64   `gorm:"type:decimal(10,2);not null;default:0;column:km_per_day"`
	DaysPerMonth       float64   `gorm:"type:decimal(10,2);not null;default:0;column:days_per_month"`
	KmPerLiter         float64   `gorm:"type:decimal(10,2);not null;default:0;column:km_per_liter"`
	FuelPrice          float64   `gorm:"type:decimal(15,2);not null;default:0;column:fuel_price"`
}

// QuoteInfrastructure is a dedicated infrastructure cost entry
// (guard booth, lighting tower) with an hours-based fuel sub-model.
// Additive with catalog-driven infrastructure/fuel cost items.
type QuoteInfrastructure struct {
	BaseModel
	QuoteID           uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	Description       string    `gorm:"type:varchar(200)"`
	IsEnabled         bool      `gorm:"not null;default:true;column:is_enabled"`
	Quantity          float64   `gorm:"type:decimal(10,2);not null;default:1"`
	RentMonthly       float64   `gorm:"type:decimal(15,2);not null;default:0;column:rent_monthly"`
	HasFuel           bool      `gorm:"not null;default:false;column:has_fuel"`
	FuelLitersPerHour float64   `gorm:"type:decimal(10,2);not null;default:0;column:fuel_liters_per_hour"`
	FuelHoursPerDay   float64   `gorm:"type:decimal(10,2);not null;default:0;column:fuel_hours_per_day"`
	FuelDaysPerMonth  float64   `gorm:"type:decimal(10,2);not null;default:0;column:fuel_days_per_month"`
	FuelPrice         float64   `gorm:"type:decimal(15,2);not null;default:0;column:fuel_price"`
}

// QuoteParameters holds the scalar pricing configuration for a quote.
// Defaults come from GlobalSettings at quote creation and are
// overridden per quote. SalePriceMonthly is written back by the engine
// after every recompute.
type QuoteParameters struct {
	BaseModel
	QuoteID                  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:quote_id"`
	MonthlyHoursStandard     float64   `gorm:"type:decimal(10,2);not null;default:180;column:monthly_hours_standard"`
	AvgStayMonths            float64   `gorm:"type:decimal(10,2);not null;default:12;column:avg_stay_months"`
	UniformChangesPerYear    float64   `gorm:"type:decimal(10,2);not null;default:2;column:uniform_changes_per_year"`
	MonthlyHolidayAdjustment float64   `gorm:"type:decimal(15,2);not null;default:0;column:monthly_holiday_adjustment"`
	MarginPct                float64   `gorm:"type:decimal(5,2);not null;default:0;column:margin_pct"`
	FinancialEnabled         bool      `gorm:"not null;default:false;column:financial_enabled"`
	FinancialRatePct         float64   `gorm:"type:decimal(5,2);not null;default:0;column:financial_rate_pct"`
	SalePriceBase            float64   `gorm:"type:decimal(15,2);not null;default:0;column:sale_price_base"`
	SalePriceMonthly         float64   `gorm:"type:decimal(15,2);not null;default:0;column:sale_price_monthly"`
	PolicyEnabled            bool      `gorm:"not null;default:false;column:policy_enabled"`
	PolicyRatePct            float64   `gorm:"type:decimal(5,2);not null;default:0;column:policy_rate_pct"`
	PolicyAdminRatePct       float64   `gorm:"type:decimal(5,2);not null;default:0;column:policy_admin_rate_pct"`
	PolicyContractMonths     float64   `gorm:"type:decimal(10,2);not null;default:0;column:policy_contract_months"`
	PolicyContractPct        float64   `gorm:"type:decimal(5,2);not null;default:0;column:policy_contract_pct"`
	ContractMonths           float64   `gorm:"type:decimal(10,2);not null;default:0;column:contract_months"`
	ContractAmount           float64   `gorm:"type:decimal(15,2);not null;default:0;column:contract_amount"`
}

// Position is a priced staffing line (a guard post with a schedule)
// within a quote. MonthlyPositionCost is the allocation weight; the
// allocator never replaces it. AllocatedSalePrice and HourlyRate are
// caches of the last engine run.
type Position struct {
	BaseModel
	QuoteID             uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	Name                string    `gorm:"type:varchar(200);not null"`
	NumGuards           int       `gorm:"not null;default:1;column:num_guards"`
	NumPuestos          int       `gorm:"not null;default:1;column:num_puestos"`
	MonthlyPositionCost float64   `gorm:"type:decimal(15,2);not null;default:0;column:monthly_position_cost"`
	AllocatedSalePrice  float64   `gorm:"type:decimal(15,2);not null;default:0;column:allocated_sale_price"`
	HourlyRate          float64   `gorm:"type:decimal(15,4);not null;default:0;column:hourly_rate"`
	DisplayOrder        int       `gorm:"not null;default:0;column:display_order"`
}

// GlobalSettings is a single-row table with the default quote
// parameters applied when a new quote is created.
type GlobalSettings struct {
	ID                    int       `gorm:"primaryKey"`
	MonthlyHoursStandard  float64   `gorm:"type:decimal(10,2);not null;default:180;column:monthly_hours_standard"`
	AvgStayMonths         float64   `gorm:"type:decimal(10,2);not null;default:12;column:avg_stay_months"`
	UniformChangesPerYear float64   `gorm:"type:decimal(10,2);not null;default:2;column:uniform_changes_per_year"`
	MarginPct             float64   `gorm:"type:decimal(5,2);not null;default:10;column:margin_pct"`
	FinancialRatePct      float64   `gorm:"type:decimal(5,2);not null;default:0;column:financial_rate_pct"`
	PolicyRatePct         float64   `gorm:"type:decimal(5,2);not null;default:0;column:policy_rate_pct"`
	PolicyAdminRatePct    float64   `gorm:"type:decimal(5,2);not null;default:0;column:policy_admin_rate_pct"`
	PolicyContractPct     float64   `gorm:"type:decimal(5,2);not null;default:0;column:policy_contract_pct"`
	UpdatedAt             time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName keeps the singular table name for the singleton row
func (GlobalSettings) TableName() string {
	return "global_settings"
}

// ActivityTargetType represents the type of entity an activity is associated with
type ActivityTargetType string

const (
	ActivityTargetClient  ActivityTargetType = "Client"
	ActivityTargetQuote   ActivityTargetType = "Quote"
	ActivityTargetCatalog ActivityTargetType = "Catalog"
)

// Activity represents an event log entry for any entity
type Activity struct {
	BaseModel
	TargetType  ActivityTargetType `gorm:"type:varchar(50);not null;index;column:target_type"`
	TargetID    uuid.UUID          `gorm:"type:uuid;not null;index;column:target_id"`
	Title       string             `gorm:"type:varchar(200);not null"`
	Body        string             `gorm:"type:varchar(2000)"`
	OccurredAt  time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP;index;column:occurred_at"`
	CreatorID   string             `gorm:"type:varchar(100);column:creator_id"`
	CreatorName string             `gorm:"type:varchar(200);column:creator_name"`
}

// File represents an uploaded quote attachment
type File struct {
	BaseModel
	Filename    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100);not null"`
	Size        int64      `gorm:"not null"`
	StoragePath string     `gorm:"type:varchar(500);not null;unique"`
	QuoteID     *uuid.UUID `gorm:"type:uuid;index;column:quote_id"`
	Quote       *Quote     `gorm:"foreignKey:QuoteID"`
}

// UserRoleType represents a role a user can have
type UserRoleType string

const (
	RoleAdmin  UserRoleType = "admin"
	RoleSales  UserRoleType = "sales"
	RoleViewer UserRoleType = "viewer"
)
