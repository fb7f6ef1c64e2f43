package sqlite

import "github.com/shopspring/decimal"

type sourceRow struct {
	Source     string `gorm:"column:source;primaryKey"`
	Rows       int    `gorm:"column:row_count;not null"`
	ImportedAt string `gorm:"column:imported_at;type:text;not null"`
}

func (sourceRow) TableName() string { return "sources" }

type drawingRow struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Position int    `gorm:"column:position;not null;index"`
	Number   string `gorm:"column:drawing_no;type:text;not null;index"`
	Category string `gorm:"column:category;type:text"`
	Area     string `gorm:"column:area;type:text"`
	System   string `gorm:"column:system_tag;type:text"`
	Title    string `gorm:"column:title;type:text"`
	Hold     bool   `gorm:"column:hold;not null;default:0"`
	Status   string `gorm:"column:status;type:text"`
	Remark   string `gorm:"column:remark;type:text"`
}

func (drawingRow) TableName() string { return "drawings" }

type revisionRow struct {
	DrawingID uint64 `gorm:"column:drawing_id;primaryKey"`
	Position  int    `gorm:"column:position;primaryKey"`
	Label     string `gorm:"column:label;type:text"`
	Date      string `gorm:"column:rev_date;type:text"`
}

func (revisionRow) TableName() string { return "drawing_revisions" }

type materialRow struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Position    int    `gorm:"column:position;not null;index"`
	IdentCode   string `gorm:"column:ident_code;type:text;not null;index"`
	Description string `gorm:"column:description;type:text"`
	Size        string `gorm:"column:size;type:text"`
	Unit        string `gorm:"column:unit;type:text"`
	RequiredQty int64  `gorm:"column:required_qty;not null"`
}

func (materialRow) TableName() string { return "materials" }

type ledgerRow struct {
	Seq           uint64 `gorm:"column:seq;primaryKey;autoIncrement"`
	EntryID       string `gorm:"column:entry_id;type:text"`
	Date          string `gorm:"column:entry_date;type:text;not null"`
	Type          string `gorm:"column:type;type:text;not null"`
	IdentCode     string `gorm:"column:ident_code;type:text;not null;index"`
	Quantity      int64  `gorm:"column:quantity;not null"`
	DrawingNumber string `gorm:"column:drawing_no;type:text"`
	Remark        string `gorm:"column:remark;type:text"`
}

func (ledgerRow) TableName() string { return "ledger" }

type installationRow struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	Position        int             `gorm:"column:position;not null;index"`
	DrawingNumber   string          `gorm:"column:drawing_no;type:text;not null;index"`
	JointID         string          `gorm:"column:joint_id;type:text"`
	NominalSize     decimal.Decimal `gorm:"column:nominal_size;type:text;not null"`
	CompletedLength decimal.Decimal `gorm:"column:completed_length;type:text;not null"`
	FieldRevision   string          `gorm:"column:field_revision;type:text"`
}

func (installationRow) TableName() string { return "installations" }

func allModels() []any {
	return []any{&sourceRow{}, &drawingRow{}, &revisionRow{}, &materialRow{}, &ledgerRow{}, &installationRow{}}
}
