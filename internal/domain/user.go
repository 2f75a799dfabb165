package domain

import (
	"time"
)

// Admin types recognised by the staff listing. The value is stored as an
// opaque string; nothing else in the system interprets it.
const (
	AdminTypeReceptionist = "Receptionist"
	AdminTypeDoctor       = "Doctor"
	AdminTypePharmacist   = "Pharmacist"
	AdminTypeNurse        = "Nurse"
	AdminTypeAccountant   = "Accountant"
	AdminTypeSuperAdmin   = "SuperAdmin"
)

var AdminTypes = []string{
	AdminTypeReceptionist,
	AdminTypeDoctor,
	AdminTypePharmacist,
	AdminTypeNurse,
	AdminTypeAccountant,
	AdminTypeSuperAdmin,
}

type User struct {
	ID         int64      `db:"id" json:"id"`
	FirstName  string     `db:"firstname" json:"firstname"`
	LastName   string     `db:"lastname" json:"lastname"`
	Email      string     `db:"email" json:"email"`
	Number     string     `db:"number" json:"number"`
	Address    *string    `db:"address" json:"address,omitempty"`
	DOB        time.Time  `db:"dob" json:"dob"`
	Gender     *string    `db:"gender" json:"gender,omitempty"`
	Age        int        `db:"age" json:"age"`
	Password   string     `db:"password" json:"-"`
	AdminType  string     `db:"admin_type" json:"adminType"`
	Department *string    `db:"department" json:"department,omitempty"`
	ImageURL   *string    `db:"image_url" json:"image_url,omitempty"`
	DateCreate time.Time  `db:"datecreate" json:"datecreate"`
	DateUpdate *time.Time `db:"dateupdate" json:"dateupdate,omitempty"`
}

func (u User) PrimaryKey() int64 { return u.ID }

// AgeInYears mirrors how staff ages are recorded: the difference between
// calendar years, ignoring month and day.
func AgeInYears(dob, now time.Time) int {
	return now.Year() - dob.Year()
}
