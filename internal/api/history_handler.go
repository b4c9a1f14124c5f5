package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/resume"
)

func (h *ResumeHandler) GetEducationHistory(c *gin.Context) {
	history, err := h.resume.GetEducationHistory(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.EducationHistory{History: history})
}

func (h *ResumeHandler) GetEducationItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.resume.GetEducationItem(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResumeHandler) UpsertEducationItem(c *gin.Context) {
	var req resume.Education
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, created, err := h.resume.UpsertEducationItem(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, item, created)
}

func (h *ResumeHandler) DeleteEducationItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.resume.DeleteEducationItem(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetExperience(c *gin.Context) {
	jobs, err := h.resume.GetExperience(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.JobHistory{Experience: jobs})
}

func (h *ResumeHandler) GetExperienceItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	job, err := h.resume.GetExperienceItem(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *ResumeHandler) UpsertExperienceItem(c *gin.Context) {
	var req resume.Job
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	job, created, err := h.resume.UpsertExperienceItem(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, job, created)
}

func (h *ResumeHandler) DeleteExperienceItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.resume.DeleteExperienceItem(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetJobDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.resume.GetJobDetail(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ResumeHandler) UpsertJobDetail(c *gin.Context) {
	var req resume.JobDetail
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	detail, created, err := h.resume.UpsertJobDetail(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, detail, created)
}

func (h *ResumeHandler) DeleteJobDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.resume.DeleteJobDetail(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetJobHighlight(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	highlight, err := h.resume.GetJobHighlight(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, highlight)
}

func (h *ResumeHandler) UpsertJobHighlight(c *gin.Context) {
	var req resume.JobHighlight
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	highlight, created, err := h.resume.UpsertJobHighlight(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, highlight, created)
}

func (h *ResumeHandler) DeleteJobHighlight(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.resume.DeleteJobHighlight(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCertifications 支持 ?valid_only=true 只返回仍有效的认证。
func (h *ResumeHandler) GetCertifications(c *gin.Context) {
	validOnly := false
	if raw := c.Query("valid_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			BadRequest(c, "invalid valid_only "+strconv.Quote(raw))
			return
		}
		validOnly = v
	}

	certs, err := h.resume.GetCertifications(c.Request.Context(), validOnly)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.CertificationHistory{CertificationHistory: certs})
}

func (h *ResumeHandler) GetCertification(c *gin.Context) {
	cert, err := h.resume.GetCertification(c.Request.Context(), c.Param("cert"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *ResumeHandler) UpsertCertification(c *gin.Context) {
	var req resume.Certification
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	cert, created, err := h.resume.UpsertCertification(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, cert, created)
}

func (h *ResumeHandler) DeleteCertification(c *gin.Context) {
	if err := h.resume.DeleteCertification(c.Request.Context(), c.Param("cert")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
