package service

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/pkg/db/pagination"
)

func encodeToken(id snowflake.ID) (string, error) {
	return pagination.EncodeCursor(pagination.Cursor{ID: id.String()})
}

func decodeToken(token string) (snowflake.ID, error) {
	cursor, err := pagination.DecodeCursor(token)
	if err != nil {
		return 0, err
	}
	return snowflake.ParseString(cursor.ID)
}
