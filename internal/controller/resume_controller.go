// Package controller 实现 HTTP 处理器背后的业务操作。
// 控制器在构造时获得数据库句柄，对外只使用 resume 包中的传输对象。
package controller

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"resumeapi/internal/cache"
	"resumeapi/internal/resume"
)

// ResumeController 负责读写简历的各个部分。
type ResumeController struct {
	db     *gorm.DB
	cache  *cache.ResumeCache
	logger *slog.Logger
}

// NewResumeController 构造 ResumeController，resumeCache 可为 nil。
func NewResumeController(db *gorm.DB, resumeCache *cache.ResumeCache, logger *slog.Logger) *ResumeController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumeController{db: db, cache: resumeCache, logger: logger}
}

// GetFullResume 将全部部分组装为一个文档，配置缓存时走旁路缓存。
func (r *ResumeController) GetFullResume(ctx context.Context) (resume.FullResume, error) {
	var doc resume.FullResume
	fetch := func() error {
		built, err := r.buildFullResume(ctx)
		if err != nil {
			return err
		}
		doc = built
		return nil
	}

	if r.cache == nil {
		err := fetch()
		return doc, err
	}
	err := r.cache.CacheAside(ctx, &doc, fetch)
	return doc, err
}

func (r *ResumeController) buildFullResume(ctx context.Context) (resume.FullResume, error) {
	var (
		doc resume.FullResume
		err error
	)

	if doc.BasicInfo, err = r.GetBasicInfo(ctx); err != nil {
		return doc, err
	}
	if doc.Education.History, err = r.GetEducationHistory(ctx); err != nil {
		return doc, err
	}
	if doc.Experience.Experience, err = r.GetExperience(ctx); err != nil {
		return doc, err
	}
	if doc.Certifications.CertificationHistory, err = r.GetCertifications(ctx, false); err != nil {
		return doc, err
	}
	if doc.SideProjects.Projects, err = r.GetSideProjects(ctx); err != nil {
		return doc, err
	}
	if doc.Interests, err = r.GetAllInterests(ctx); err != nil {
		return doc, err
	}
	if doc.SocialLinks, err = r.GetSocialLinks(ctx); err != nil {
		return doc, err
	}
	if doc.Skills.Skills, err = r.GetSkills(ctx); err != nil {
		return doc, err
	}
	if doc.Competencies.Competencies, err = r.GetCompetencies(ctx); err != nil {
		return doc, err
	}
	if doc.Preferences, err = r.GetPreferences(ctx); err != nil {
		return doc, err
	}
	return doc, nil
}

// invalidate 在每次成功写入后执行，失败时旧缓存按 TTL 自然过期。
func (r *ResumeController) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		r.logger.Warn("failed to invalidate resume cache", slog.Any("error", err))
	}
}

// written 在 err 为 nil 时使缓存失效，并原样返回 err。
func (r *ResumeController) written(ctx context.Context, err error) error {
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}
