package models

import (
	"errors"

	"gorm.io/gorm"
)

// SeedDefaults inserts the baseline system_config rows and call
// templates on first boot. Existing rows are never touched, so operator
// edits survive restarts.
func SeedDefaults(db *gorm.DB) error {
	configs := []SystemConfig{
		{
			Key:         ConfigKeyCheckinTime,
			Value:       JSONValue(`{"startTime":"08:00","endTime":"08:30","lateThreshold":30}`),
			Description: "打卡时间配置",
		},
		{
			Key:         ConfigKeyAutoCall,
			Value:       JSONValue(`{"enabled":true,"checkInterval":30,"maxRetries":3,"retryInterval":10}`),
			Description: "自动外呼配置",
		},
	}

	for i := range configs {
		if err := insertIfMissing(db, &SystemConfig{}, "config_key = ?", configs[i].Key, &configs[i]); err != nil {
			return err
		}
	}

	templates := []CallTemplate{
		{
			TemplateID: "template_001",
			Name:       "未打卡提醒",
			Content:    "您好，您今天还未完成打卡，请及时打卡。按1确认收到，按2需要请假。",
			Params:     StringList{"driverName", "currentTime"},
			IsActive:   true,
		},
		{
			TemplateID: "template_002",
			Name:       "迟到提醒",
			Content:    "您好，您今天打卡迟到了，请注意准时打卡。按1确认收到。",
			Params:     StringList{"driverName", "lateMinutes"},
			IsActive:   true,
		},
	}

	for i := range templates {
		if err := insertIfMissing(db, &CallTemplate{}, "template_id = ?", templates[i].TemplateID, &templates[i]); err != nil {
			return err
		}
	}

	return nil
}

func insertIfMissing(db *gorm.DB, probe interface{}, query string, arg interface{}, row interface{}) error {
	err := db.Where(query, arg).First(probe).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(row).Error
}
