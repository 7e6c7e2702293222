package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "links", Link{}.TableName())
	assert.Equal(t, "ban_domains", BanDomain{}.TableName())
	assert.Equal(t, "access_logs", AccessLog{}.TableName())
}

func TestLinkManaged(t *testing.T) {
	hash := "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	empty := ""

	assert.True(t, (&Link{PasswordHash: &hash}).Managed())
	assert.False(t, (&Link{}).Managed())
	assert.False(t, (&Link{PasswordHash: &empty}).Managed())
}
