package controller

import (
	"context"
	"fmt"

	"resumeapi/internal/database"
	"resumeapi/internal/resume"
)

// GetCertifications 列出证书，validOnly 为 true 时只返回有效证书。
func (r *ResumeController) GetCertifications(ctx context.Context, validOnly bool) ([]resume.Certification, error) {
	var conds []any
	if validOnly {
		conds = []any{"valid = ?", true}
	}
	rows, err := listRecords[database.Certification](ctx, r.db, "certifications", conds...)
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, certificationDTO), nil
}

// GetCertification 按证书名查询。
func (r *ResumeController) GetCertification(ctx context.Context, cert string) (resume.Certification, error) {
	row, err := takeRecord[database.Certification](ctx, r.db, map[string]any{"cert": cert}, fmt.Sprintf("certification %q", cert))
	if err != nil {
		return resume.Certification{}, err
	}
	return certificationDTO(row), nil
}

// UpsertCertification 以 cert 为键写入，命中时覆盖其余字段。
func (r *ResumeController) UpsertCertification(ctx context.Context, in resume.Certification) (resume.Certification, bool, error) {
	rec := database.Certification{
		Cert:     in.Cert,
		FullName: in.FullName,
		Time:     in.Time,
		Valid:    in.Valid,
		Progress: in.Progress,
	}
	updates := []string{"full_name", "time", "valid", "progress"}

	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"cert": in.Cert}, updates, fmt.Sprintf("certification %q", in.Cert))
	if err := r.written(ctx, err); err != nil {
		return resume.Certification{}, false, err
	}
	return certificationDTO(rec), created, nil
}

// DeleteCertification 按证书名删除。
func (r *ResumeController) DeleteCertification(ctx context.Context, cert string) error {
	err := deleteRecord[database.Certification](ctx, r.db, map[string]any{"cert": cert}, fmt.Sprintf("certification %q", cert))
	return r.written(ctx, err)
}

// GetSideProjects 按 id 顺序返回全部个人项目。
func (r *ResumeController) GetSideProjects(ctx context.Context) ([]resume.SideProject, error) {
	rows, err := listRecords[database.SideProject](ctx, r.db, "side projects")
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, sideProjectDTO), nil
}

// GetSideProject 按标题查询个人项目。
func (r *ResumeController) GetSideProject(ctx context.Context, title string) (resume.SideProject, error) {
	row, err := takeRecord[database.SideProject](ctx, r.db, map[string]any{"title": title}, fmt.Sprintf("side project %q", title))
	if err != nil {
		return resume.SideProject{}, err
	}
	return sideProjectDTO(row), nil
}

// UpsertSideProject 以 title 为键写入。
func (r *ResumeController) UpsertSideProject(ctx context.Context, in resume.SideProject) (resume.SideProject, bool, error) {
	rec := database.SideProject{Title: in.Title, Tagline: in.Tagline, Link: in.Link}
	created, err := upsertRecord(ctx, r.db, &rec, map[string]any{"title": in.Title}, []string{"tagline", "link"}, fmt.Sprintf("side project %q", in.Title))
	if err := r.written(ctx, err); err != nil {
		return resume.SideProject{}, false, err
	}
	return sideProjectDTO(rec), created, nil
}

// DeleteSideProject 按标题删除个人项目。
func (r *ResumeController) DeleteSideProject(ctx context.Context, title string) error {
	err := deleteRecord[database.SideProject](ctx, r.db, map[string]any{"title": title}, fmt.Sprintf("side project %q", title))
	return r.written(ctx, err)
}
