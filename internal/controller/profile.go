package controller

import (
	"context"
	"fmt"

	"resumeapi/internal/database"
	"resumeapi/internal/resume"
)

// GetBasicInfo 以 fact -> value 返回全部基本信息。
func (r *ResumeController) GetBasicInfo(ctx context.Context) (map[string]string, error) {
	rows, err := listRecords[database.BasicInfo](ctx, r.db, "basic info")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Fact] = row.Value
	}
	return out, nil
}

// GetBasicInfoItem 按 fact 查询基本信息。
func (r *ResumeController) GetBasicInfoItem(ctx context.Context, fact string) (resume.BasicInfoItem, error) {
	row, err := takeRecord[database.BasicInfo](ctx, r.db, map[string]any{"fact": fact}, fmt.Sprintf("fact %q", fact))
	if err != nil {
		return resume.BasicInfoItem{}, err
	}
	return basicInfoDTO(row), nil
}

// UpsertBasicInfoItem 以 fact 为键写入 value。
func (r *ResumeController) UpsertBasicInfoItem(ctx context.Context, in resume.BasicInfoItem) (resume.BasicInfoItem, bool, error) {
	rec := database.BasicInfo{Fact: in.Fact, Value: in.Value}
	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"fact": in.Fact}, []string{"value"}, fmt.Sprintf("fact %q", in.Fact))
	if err := r.written(ctx, err); err != nil {
		return resume.BasicInfoItem{}, false, err
	}
	return basicInfoDTO(rec), created, nil
}

// DeleteBasicInfoItem 按 fact 删除。
func (r *ResumeController) DeleteBasicInfoItem(ctx context.Context, fact string) error {
	err := deleteRecord[database.BasicInfo](ctx, r.db, map[string]any{"fact": fact}, fmt.Sprintf("fact %q", fact))
	return r.written(ctx, err)
}

// GetSocialLinks 以 platform -> link 返回社交链接。
func (r *ResumeController) GetSocialLinks(ctx context.Context) (map[string]string, error) {
	rows, err := listRecords[database.SocialLink](ctx, r.db, "social links")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Platform] = row.Link
	}
	return out, nil
}

// GetSocialLink 按平台查询社交链接。
func (r *ResumeController) GetSocialLink(ctx context.Context, platform string) (resume.SocialLink, error) {
	row, err := takeRecord[database.SocialLink](ctx, r.db, map[string]any{"platform": platform}, fmt.Sprintf("platform %q", platform))
	if err != nil {
		return resume.SocialLink{}, err
	}
	return socialLinkDTO(row), nil
}

// UpsertSocialLink 以 platform 为键写入链接。
func (r *ResumeController) UpsertSocialLink(ctx context.Context, in resume.SocialLink) (resume.SocialLink, bool, error) {
	rec := database.SocialLink{Platform: in.Platform, Link: in.Link}
	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"platform": in.Platform}, []string{"link"}, fmt.Sprintf("platform %q", in.Platform))
	if err := r.written(ctx, err); err != nil {
		return resume.SocialLink{}, false, err
	}
	return socialLinkDTO(rec), created, nil
}

// DeleteSocialLink 按平台删除社交链接。
func (r *ResumeController) DeleteSocialLink(ctx context.Context, platform string) error {
	err := deleteRecord[database.SocialLink](ctx, r.db, map[string]any{"platform": platform}, fmt.Sprintf("platform %q", platform))
	return r.written(ctx, err)
}

// GetPreferences 以 preference -> value 返回偏好。
func (r *ResumeController) GetPreferences(ctx context.Context) (map[string]string, error) {
	rows, err := listRecords[database.Preference](ctx, r.db, "preferences")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Preference] = row.Value
	}
	return out, nil
}

// GetPreference 按名称查询偏好。
func (r *ResumeController) GetPreference(ctx context.Context, preference string) (resume.Preference, error) {
	row, err := takeRecord[database.Preference](ctx, r.db, map[string]any{"preference": preference}, fmt.Sprintf("preference %q", preference))
	if err != nil {
		return resume.Preference{}, err
	}
	return preferenceDTO(row), nil
}

// UpsertPreference 以 preference 为键写入 value。
func (r *ResumeController) UpsertPreference(ctx context.Context, in resume.Preference) (resume.Preference, bool, error) {
	rec := database.Preference{Preference: in.Preference, Value: in.Value}
	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"preference": in.Preference}, []string{"value"}, fmt.Sprintf("preference %q", in.Preference))
	if err := r.written(ctx, err); err != nil {
		return resume.Preference{}, false, err
	}
	return preferenceDTO(rec), created, nil
}

// DeletePreference 按名称删除偏好。
func (r *ResumeController) DeletePreference(ctx context.Context, preference string) error {
	err := deleteRecord[database.Preference](ctx, r.db, map[string]any{"preference": preference}, fmt.Sprintf("preference %q", preference))
	return r.written(ctx, err)
}
