package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// wrap 为存储错误附加上下文；记录不存在原样返回，便于上层 errors.Is 判断
func wrap(err error, msg string) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return errors.Wrap(err, msg)
}

// toggle 先按 pair 删除，删到了说明原来存在；否则插入，冲突时什么也不做。
// pair 上的唯一索引保证并发下至多一行
func toggle(ctx context.Context, db *gorm.DB, row interface{}, where string, args ...interface{}) (bool, error) {
	res := db.WithContext(ctx).Where(where, args...).Delete(row)
	if res.Error != nil {
		return false, wrap(res.Error, "toggle delete")
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
		return false, wrap(err, "toggle insert")
	}
	return true, nil
}
