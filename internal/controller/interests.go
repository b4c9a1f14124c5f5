package controller

import (
	"context"
	"fmt"

	"resumeapi/internal/database"
	"resumeapi/internal/resume"
)

// GetInterests 返回某一类别的兴趣名称。
func (r *ResumeController) GetInterests(ctx context.Context, category string) ([]string, error) {
	interestType, err := r.interestType(ctx, category)
	if err != nil {
		return nil, err
	}
	rows, err := listRecords[database.Interest](ctx, r.db, category+" interests", "interest_type_id = ?", interestType.ID)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, func(i database.Interest) string { return i.Interest }), nil
}

// GetAllInterests 合并个人与技术两类兴趣。
func (r *ResumeController) GetAllInterests(ctx context.Context) (resume.Interests, error) {
	personal, err := r.GetInterests(ctx, database.InterestPersonal)
	if err != nil {
		return resume.Interests{}, err
	}
	technical, err := r.GetInterests(ctx, database.InterestTechnical)
	if err != nil {
		return resume.Interests{}, err
	}
	return resume.Interests{Personal: personal, Technical: technical}, nil
}

// UpsertInterest 将兴趣写入 category 类别，已存在的兴趣会移动到该类别。
func (r *ResumeController) UpsertInterest(ctx context.Context, category string, in resume.Interest) (resume.Interest, bool, error) {
	interestType, err := r.interestType(ctx, category)
	if err != nil {
		return resume.Interest{}, false, err
	}

	rec := database.Interest{Interest: in.Interest, InterestTypeID: interestType.ID}
	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"interest": in.Interest}, []string{"interest_type_id"}, fmt.Sprintf("interest %q", in.Interest))
	if err := r.written(ctx, err); err != nil {
		return resume.Interest{}, false, err
	}
	return resume.Interest{ID: rec.ID, Interest: rec.Interest, Category: interestType.InterestType}, created, nil
}

// DeleteInterest 删除兴趣，不区分类别。
func (r *ResumeController) DeleteInterest(ctx context.Context, interest string) error {
	err := deleteRecord[database.Interest](ctx, r.db, map[string]any{"interest": interest}, fmt.Sprintf("interest %q", interest))
	return r.written(ctx, err)
}

func (r *ResumeController) interestType(ctx context.Context, category string) (database.InterestType, error) {
	return takeRecord[database.InterestType](ctx, r.db, map[string]any{"interest_type": category}, fmt.Sprintf("interest category %q", category))
}
