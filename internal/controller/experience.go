package controller

import (
	"context"
	"fmt"

	"resumeapi/internal/database"
	"resumeapi/internal/resume"
)

// GetExperience 按 id 顺序返回全部工作及其描述与亮点。
func (r *ResumeController) GetExperience(ctx context.Context) ([]resume.JobEntry, error) {
	jobs, err := listRecords[database.Job](ctx, r.db, "jobs")
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []resume.JobEntry{}, nil
	}

	ids := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	details, err := listRecords[database.JobDetail](ctx, r.db, "job details", "job_id IN ?", ids)
	if err != nil {
		return nil, err
	}
	highlights, err := listRecords[database.JobHighlight](ctx, r.db, "job highlights", "job_id IN ?", ids)
	if err != nil {
		return nil, err
	}

	detailsByJob := make(map[uint][]database.JobDetail, len(jobs))
	for _, d := range details {
		detailsByJob[d.JobID] = append(detailsByJob[d.JobID], d)
	}
	highlightsByJob := make(map[uint][]database.JobHighlight, len(jobs))
	for _, h := range highlights {
		highlightsByJob[h.JobID] = append(highlightsByJob[h.JobID], h)
	}

	out := make([]resume.JobEntry, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobEntry(j, detailsByJob[j.ID], highlightsByJob[j.ID]))
	}
	return out, nil
}

// GetExperienceItem 返回单个工作及其描述与亮点。
func (r *ResumeController) GetExperienceItem(ctx context.Context, id uint) (resume.JobEntry, error) {
	job, err := takeRecord[database.Job](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("job %d", id))
	if err != nil {
		return resume.JobEntry{}, err
	}
	details, err := listRecords[database.JobDetail](ctx, r.db, "job details", "job_id = ?", id)
	if err != nil {
		return resume.JobEntry{}, err
	}
	highlights, err := listRecords[database.JobHighlight](ctx, r.db, "job highlights", "job_id = ?", id)
	if err != nil {
		return resume.JobEntry{}, err
	}
	return jobEntry(job, details, highlights), nil
}

// UpsertExperienceItem 以 employer 为键写入。
func (r *ResumeController) UpsertExperienceItem(ctx context.Context, in resume.Job) (resume.Job, bool, error) {
	rec := database.Job{
		Employer:        in.Employer,
		EmployerSummary: in.EmployerSummary,
		Location:        in.Location,
		JobTitle:        in.JobTitle,
		JobSummary:      in.JobSummary,
		Time:            in.Time,
	}
	updates := []string{"employer_summary", "location", "job_title", "job_summary", "time"}

	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"employer": in.Employer}, updates, fmt.Sprintf("job %q", in.Employer))
	if err := r.written(ctx, err); err != nil {
		return resume.Job{}, false, err
	}
	return jobDTO(rec), created, nil
}

// DeleteExperienceItem 只删除工作本身，其描述与亮点仍可按 id 访问。
func (r *ResumeController) DeleteExperienceItem(ctx context.Context, id uint) error {
	err := deleteRecord[database.Job](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("job %d", id))
	return r.written(ctx, err)
}

// GetJobDetail 按 id 查询工作描述。
func (r *ResumeController) GetJobDetail(ctx context.Context, id uint) (resume.JobDetail, error) {
	row, err := takeRecord[database.JobDetail](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("job detail %d", id))
	if err != nil {
		return resume.JobDetail{}, err
	}
	return jobDetailDTO(row), nil
}

// UpsertJobDetail 按 in.ID 更新描述，ID 为 0 时插入，未知 ID 返回 ErrNotFound。所属工作必须存在。
func (r *ResumeController) UpsertJobDetail(ctx context.Context, in resume.JobDetail) (resume.JobDetail, bool, error) {
	if err := r.requireJob(ctx, in.JobID); err != nil {
		return resume.JobDetail{}, false, err
	}
	rec := database.JobDetail{ID: in.ID, JobID: in.JobID, Detail: in.Detail}
	created, err := saveByID(ctx, r.db, &rec, in.ID, []string{"job_id", "detail"}, fmt.Sprintf("job detail %d", in.ID))
	if err := r.written(ctx, err); err != nil {
		return resume.JobDetail{}, false, err
	}
	return jobDetailDTO(rec), created, nil
}

// DeleteJobDetail 按 id 删除工作描述。
func (r *ResumeController) DeleteJobDetail(ctx context.Context, id uint) error {
	err := deleteRecord[database.JobDetail](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("job detail %d", id))
	return r.written(ctx, err)
}

// GetJobHighlight 按 id 查询工作亮点。
func (r *ResumeController) GetJobHighlight(ctx context.Context, id uint) (resume.JobHighlight, error) {
	row, err := takeRecord[database.JobHighlight](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("job highlight %d", id))
	if err != nil {
		return resume.JobHighlight{}, err
	}
	return jobHighlightDTO(row), nil
}

// UpsertJobHighlight 按 in.ID 更新亮点，ID 为 0 时插入，未知 ID 返回 ErrNotFound。所属工作必须存在。
func (r *ResumeController) UpsertJobHighlight(ctx context.Context, in resume.JobHighlight) (resume.JobHighlight, bool, error) {
	if err := r.requireJob(ctx, in.JobID); err != nil {
		return resume.JobHighlight{}, false, err
	}
	rec := database.JobHighlight{ID: in.ID, JobID: in.JobID, Highlight: in.Highlight}
	created, err := saveByID(ctx, r.db, &rec, in.ID, []string{"job_id", "highlight"}, fmt.Sprintf("job highlight %d", in.ID))
	if err := r.written(ctx, err); err != nil {
		return resume.JobHighlight{}, false, err
	}
	return jobHighlightDTO(rec), created, nil
}

// DeleteJobHighlight 按 id 删除工作亮点。
func (r *ResumeController) DeleteJobHighlight(ctx context.Context, id uint) error {
	err := deleteRecord[database.JobHighlight](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("job highlight %d", id))
	return r.written(ctx, err)
}

func (r *ResumeController) requireJob(ctx context.Context, id uint) error {
	_, err := takeRecord[database.Job](ctx, r.db, map[string]any{"id": id}, fmt.Sprintf("job %d", id))
	return err
}
