package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/controller"
	"resumeapi/internal/resume"
)

// ResumeHandler 负责处理与简历各分区相关的 API 请求。
type ResumeHandler struct {
	resume *controller.ResumeController
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(resumeController *controller.ResumeController) *ResumeHandler {
	return &ResumeHandler{resume: resumeController}
}

// GetFullResume 返回完整简历文档。
func (h *ResumeHandler) GetFullResume(c *gin.Context) {
	doc, err := h.resume.GetFullResume(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *ResumeHandler) GetBasicInfo(c *gin.Context) {
	info, err := h.resume.GetBasicInfo(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *ResumeHandler) GetBasicInfoItem(c *gin.Context) {
	item, err := h.resume.GetBasicInfoItem(c.Request.Context(), c.Param("fact"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{item.Fact: item.Value})
}

func (h *ResumeHandler) UpsertBasicInfoItem(c *gin.Context) {
	var req resume.BasicInfoItem
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, created, err := h.resume.UpsertBasicInfoItem(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, item, created)
}

func (h *ResumeHandler) DeleteBasicInfoItem(c *gin.Context) {
	if err := h.resume.DeleteBasicInfoItem(c.Request.Context(), c.Param("fact")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetSocialLinks(c *gin.Context) {
	links, err := h.resume.GetSocialLinks(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *ResumeHandler) GetSocialLink(c *gin.Context) {
	link, err := h.resume.GetSocialLink(c.Request.Context(), c.Param("platform"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{link.Platform: link.Link})
}

func (h *ResumeHandler) UpsertSocialLink(c *gin.Context) {
	var req resume.SocialLink
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	link, created, err := h.resume.UpsertSocialLink(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, link, created)
}

func (h *ResumeHandler) DeleteSocialLink(c *gin.Context) {
	if err := h.resume.DeleteSocialLink(c.Request.Context(), c.Param("platform")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.resume.GetPreferences(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *ResumeHandler) GetPreference(c *gin.Context) {
	pref, err := h.resume.GetPreference(c.Request.Context(), c.Param("preference"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{pref.Preference: pref.Value})
}

func (h *ResumeHandler) UpsertPreference(c *gin.Context) {
	var req resume.Preference
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	pref, created, err := h.resume.UpsertPreference(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, pref, created)
}

func (h *ResumeHandler) DeletePreference(c *gin.Context) {
	if err := h.resume.DeletePreference(c.Request.Context(), c.Param("preference")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
