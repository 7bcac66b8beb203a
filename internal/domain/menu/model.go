package menu

// Item is a dish on the café menu. Price is in tenge.
type Item struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Category    string  `json:"category" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	IsAvailable bool    `json:"is_available" gorm:"not null;default:true;index"`
	PhotoFileID *string `json:"photo_file_id,omitempty"`
}

func (Item) TableName() string { return "menu_items" }

func (i *Item) HasPhoto() bool {
	return i.PhotoFileID != nil && *i.PhotoFileID != ""
}

// CategoryCount is a category name with the number of items in it.
type CategoryCount struct {
	Category string
	Count    int64
}

// Field names an editable item attribute.
type Field string

const (
	FieldCategory     Field = "category"
	FieldName         Field = "name"
	FieldPrice        Field = "price"
	FieldPhoto        Field = "photo"
	FieldAvailability Field = "availability"
)

func (f Field) Valid() bool {
	switch f {
	case FieldCategory, FieldName, FieldPrice, FieldPhoto, FieldAvailability:
		return true
	}
	return false
}
