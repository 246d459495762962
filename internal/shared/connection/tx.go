package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a session of db whose statements run on tx. Services own
// the *sql.Tx lifecycle; repositories only borrow it.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{Context: context.Background()})
	session.Statement.ConnPool = tx
	return session
}
