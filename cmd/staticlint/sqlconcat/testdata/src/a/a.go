package a

import (
	"context"
	"fmt"
)

type DB struct{}

func (DB) Raw(sql string, args ...any) DB                               { return DB{} }
func (DB) Where(query any, args ...any) DB                              { return DB{} }
func (DB) Exec(sql string, args ...any) DB                              { return DB{} }
func (DB) QueryContext(ctx context.Context, q string, args ...any) DB { return DB{} }

const table = "images"

func queries(db DB, title string, id int) {
	db.Raw("SELECT * FROM images WHERE title = ?", title)
	db.Raw("SELECT * FROM " + table)           // константа: допустимо
	db.Where("LOWER(title) LIKE ?", "%"+title+"%") // параметр: допустимо

	db.Raw("SELECT * FROM images WHERE title = '" + title + "'") // want `SQL для Raw собран конкатенацией строк`
	db.Where("imgid = " + fmt.Sprint(id))                         // want `SQL для Where собран конкатенацией строк`
	db.Exec(fmt.Sprintf("DELETE FROM meme WHERE id = '%s'", title)) // want `SQL для Exec собран через fmt.Sprintf`
	db.QueryContext(context.Background(), ("SELECT " + title))       // want `SQL для QueryContext собран конкатенацией строк`
}

func Raw(s string) {}

func notMethod(title string) {
	Raw("x" + title)
}
