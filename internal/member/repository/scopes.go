package repository

import "gorm.io/gorm"

// Scope is a composable query condition. Scopes built from absent inputs
// return the query unchanged, so callers can chain them without nil checks.
type Scope = func(tx *gorm.DB) *gorm.DB

// UsernameEq filters by exact username. A nil username applies no condition.
func UsernameEq(username *string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if username == nil {
			return tx
		}
		return tx.Where("username = ?", *username)
	}
}

// AgeEq filters by exact age. A nil age applies no condition.
func AgeEq(age *int) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if age == nil {
			return tx
		}
		return tx.Where("age = ?", *age)
	}
}

// AgeLt filters by age strictly below the bound. A nil bound applies no condition.
func AgeLt(age *int) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if age == nil {
			return tx
		}
		return tx.Where("age < ?", *age)
	}
}

// AllEq combines the username and age conditions. Absent inputs are skipped;
// with both absent the scope is a no-op and the query stays unfiltered.
func AllEq(username *string, age *int) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return AgeEq(age)(UsernameEq(username)(tx))
	}
}
