package controller

import (
	"context"
	"fmt"

	"resumeapi/internal/database"
	"resumeapi/internal/resume"
)

// GetSkills 按 id 顺序返回全部技能。
func (r *ResumeController) GetSkills(ctx context.Context) ([]resume.Skill, error) {
	rows, err := listRecords[database.Skill](ctx, r.db, "skills")
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, skillDTO), nil
}

// GetSkill 按名称查询技能。
func (r *ResumeController) GetSkill(ctx context.Context, skill string) (resume.Skill, error) {
	row, err := takeRecord[database.Skill](ctx, r.db, map[string]any{"skill": skill}, fmt.Sprintf("skill %q", skill))
	if err != nil {
		return resume.Skill{}, err
	}
	return skillDTO(row), nil
}

// UpsertSkill 以 skill 为键写入 level。
func (r *ResumeController) UpsertSkill(ctx context.Context, in resume.Skill) (resume.Skill, bool, error) {
	rec := database.Skill{Skill: in.Skill, Level: in.Level}
	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"skill": in.Skill}, []string{"level"}, fmt.Sprintf("skill %q", in.Skill))
	if err := r.written(ctx, err); err != nil {
		return resume.Skill{}, false, err
	}
	return skillDTO(rec), created, nil
}

// DeleteSkill 按名称删除技能。
func (r *ResumeController) DeleteSkill(ctx context.Context, skill string) error {
	err := deleteRecord[database.Skill](ctx, r.db, map[string]any{"skill": skill}, fmt.Sprintf("skill %q", skill))
	return r.written(ctx, err)
}

// GetCompetencies 按 id 顺序返回能力项名称。
func (r *ResumeController) GetCompetencies(ctx context.Context) ([]string, error) {
	rows, err := listRecords[database.Competency](ctx, r.db, "competencies")
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, func(c database.Competency) string { return c.Competency }), nil
}

// GetCompetency 按名称查询能力项。
func (r *ResumeController) GetCompetency(ctx context.Context, competency string) (resume.Competency, error) {
	row, err := takeRecord[database.Competency](ctx, r.db, map[string]any{"competency": competency}, fmt.Sprintf("competency %q", competency))
	if err != nil {
		return resume.Competency{}, err
	}
	return competencyDTO(row), nil
}

// UpsertCompetency 没有非键列，已存在时原样返回。
func (r *ResumeController) UpsertCompetency(ctx context.Context, in resume.Competency) (resume.Competency, bool, error) {
	rec := database.Competency{Competency: in.Competency}
	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"competency": in.Competency}, []string{"competency"}, fmt.Sprintf("competency %q", in.Competency))
	if err := r.written(ctx, err); err != nil {
		return resume.Competency{}, false, err
	}
	return competencyDTO(rec), created, nil
}

// DeleteCompetency 按名称删除能力项。
func (r *ResumeController) DeleteCompetency(ctx context.Context, competency string) error {
	err := deleteRecord[database.Competency](ctx, r.db, map[string]any{"competency": competency}, fmt.Sprintf("competency %q", competency))
	return r.written(ctx, err)
}
