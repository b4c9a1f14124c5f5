package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/resume"
)

func (h *ResumeHandler) GetSkills(c *gin.Context) {
	skills, err := h.resume.GetSkills(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.Skills{Skills: skills})
}

func (h *ResumeHandler) GetSkill(c *gin.Context) {
	skill, err := h.resume.GetSkill(c.Request.Context(), c.Param("skill"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *ResumeHandler) UpsertSkill(c *gin.Context) {
	var req resume.Skill
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	skill, created, err := h.resume.UpsertSkill(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, skill, created)
}

func (h *ResumeHandler) DeleteSkill(c *gin.Context) {
	if err := h.resume.DeleteSkill(c.Request.Context(), c.Param("skill")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetCompetencies(c *gin.Context) {
	comps, err := h.resume.GetCompetencies(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.Competencies{Competencies: comps})
}

func (h *ResumeHandler) GetCompetency(c *gin.Context) {
	comp, err := h.resume.GetCompetency(c.Request.Context(), c.Param("competency"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comp)
}

func (h *ResumeHandler) UpsertCompetency(c *gin.Context) {
	var req resume.Competency
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	comp, created, err := h.resume.UpsertCompetency(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, comp, created)
}

func (h *ResumeHandler) DeleteCompetency(c *gin.Context) {
	if err := h.resume.DeleteCompetency(c.Request.Context(), c.Param("competency")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetAllInterests(c *gin.Context) {
	interests, err := h.resume.GetAllInterests(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interests)
}

// GetInterests 返回单个分类，例如 {"personal": [...]}。
func (h *ResumeHandler) GetInterests(c *gin.Context) {
	category := c.Param("category")
	interests, err := h.resume.GetInterests(c.Request.Context(), category)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{category: interests})
}

func (h *ResumeHandler) UpsertInterest(c *gin.Context) {
	var req resume.Interest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	interest, created, err := h.resume.UpsertInterest(c.Request.Context(), c.Param("category"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, interest, created)
}

func (h *ResumeHandler) DeleteInterest(c *gin.Context) {
	if err := h.resume.DeleteInterest(c.Request.Context(), c.Param("interest")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) GetSideProjects(c *gin.Context) {
	projects, err := h.resume.GetSideProjects(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.SideProjects{Projects: projects})
}

func (h *ResumeHandler) GetSideProject(c *gin.Context) {
	project, err := h.resume.GetSideProject(c.Request.Context(), c.Param("title"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ResumeHandler) UpsertSideProject(c *gin.Context) {
	var req resume.SideProject
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, created, err := h.resume.UpsertSideProject(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	respondUpsert(c, project, created)
}

func (h *ResumeHandler) DeleteSideProject(c *gin.Context) {
	if err := h.resume.DeleteSideProject(c.Request.Context(), c.Param("title")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
