package members

import "time"

type Member struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Member) TableName() string { return "members" }

type CreateMemberInput struct {
	Name     string
	IsActive *bool
}

type UpdateMemberInput struct {
	ID       string
	Name     *string
	IsActive *bool
}
