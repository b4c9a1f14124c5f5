package controller

import (
	"context"
	"fmt"

	"resumeapi/internal/database"
	"resumeapi/internal/resume"
)

// GetEducationHistory 按 id 顺序返回全部学历。
func (r *ResumeController) GetEducationHistory(ctx context.Context) ([]resume.Education, error) {
	rows, err := listRecords[database.Education](ctx, r.db, "education")
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, educationDTO), nil
}

// GetEducationItem 按 id 查询学历。
func (r *ResumeController) GetEducationItem(ctx context.Context, id uint) (resume.Education, error) {
	row, err := takeRecord[database.Education](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("education %d", id))
	if err != nil {
		return resume.Education{}, err
	}
	return educationDTO(row), nil
}

// UpsertEducationItem 以学校、学位与毕业年份为键，命中时只更新 GPA。
func (r *ResumeController) UpsertEducationItem(ctx context.Context, in resume.Education) (resume.Education, bool, error) {
	rec := database.Education{
		Institution:    in.Institution,
		Degree:         in.Degree,
		GraduationDate: in.GraduationDate,
		GPA:            in.GPA,
	}
	key := map[string]any{
		"institution":     in.Institution,
		"degree":          in.Degree,
		"graduation_date": in.GraduationDate,
	}
	what := fmt.Sprintf("education %q %q %d", in.Institution, in.Degree, in.GraduationDate)

	created, err := upsertRecord(ctx, r.db, &rec, key, []string{"gpa"}, what)
	if err := r.written(ctx, err); err != nil {
		return resume.Education{}, false, err
	}
	return educationDTO(rec), created, nil
}

// DeleteEducationItem 按 id 删除学历。
func (r *ResumeController) DeleteEducationItem(ctx context.Context, id uint) error {
	err := deleteRecord[database.Education](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("education %d", id))
	return r.written(ctx, err)
}
