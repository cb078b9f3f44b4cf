package models

// Category groups menu items (appetizers, main courses, desserts, ...).
type Category struct {
	BaseModel
	NameAr        string `gorm:"size:255;not null" json:"name_ar"`
	NameEn        string `gorm:"size:255;not null" json:"name_en"`
	NameFr        string `gorm:"size:255;not null" json:"name_fr"`
	DescriptionAr string `gorm:"type:text" json:"description_ar"`
	DescriptionEn string `gorm:"type:text" json:"description_en"`
	DescriptionFr string `gorm:"type:text" json:"description_fr"`
	SortOrder     int    `gorm:"column:sort_order;default:0" json:"order"`
	IsActive      bool   `gorm:"default:true;index" json:"is_active"`
}

// MenuItem is a dish. Price is in minor currency units.
type MenuItem struct {
	BaseModel
	CategoryID    uint   `gorm:"index;not null" json:"category_id"`
	NameAr        string `gorm:"size:255;not null" json:"name_ar"`
	NameEn        string `gorm:"size:255;not null" json:"name_en"`
	NameFr        string `gorm:"size:255;not null" json:"name_fr"`
	DescriptionAr string `gorm:"type:text" json:"description_ar"`
	DescriptionEn string `gorm:"type:text" json:"description_en"`
	DescriptionFr string `gorm:"type:text" json:"description_fr"`
	Price         int64  `gorm:"not null" json:"price"`
	ImageURL      string `gorm:"type:text" json:"image_url"`
	IsAvailable   bool   `gorm:"default:true;index" json:"is_available"`
	SortOrder     int    `gorm:"column:sort_order;default:0" json:"order"`
}

// DeliveryZone carries the delivery fee and minimum order for an area.
type DeliveryZone struct {
	BaseModel
	NameAr         string `gorm:"size:255;not null" json:"name_ar"`
	NameEn         string `gorm:"size:255;not null" json:"name_en"`
	NameFr         string `gorm:"size:255;not null" json:"name_fr"`
	DeliveryFee    int64  `gorm:"not null" json:"delivery_fee"`
	MinOrderAmount int64  `gorm:"default:0" json:"min_order_amount"`
	IsActive       bool   `gorm:"default:true;index" json:"is_active"`
}
