package controller

import (
	"resumeapi/internal/database"
	"resumeapi/internal/resume"
)

func basicInfoDTO(r database.BasicInfo) resume.BasicInfoItem {
	return resume.BasicInfoItem{ID: r.ID, Fact: r.Fact, Value: r.Value}
}

func educationDTO(r database.Education) resume.Education {
	return resume.Education{
		ID:             r.ID,
		Institution:    r.Institution,
		Degree:         r.Degree,
		GraduationDate: r.GraduationDate,
		GPA:            r.GPA,
	}
}

func jobDTO(r database.Job) resume.Job {
	return resume.Job{
		ID:              r.ID,
		Employer:        r.Employer,
		EmployerSummary: r.EmployerSummary,
		Location:        r.Location,
		JobTitle:        r.JobTitle,
		JobSummary:      r.JobSummary,
		Time:            r.Time,
	}
}

func jobEntry(job database.Job, details []database.JobDetail, highlights []database.JobHighlight) resume.JobEntry {
	entry := resume.JobEntry{
		Job:        jobDTO(job),
		Details:    make([]resume.JobDetailEntry, 0, len(details)),
		Highlights: make([]resume.JobHighlightEntry, 0, len(highlights)),
	}
	for _, d := range details {
		entry.Details = append(entry.Details, resume.JobDetailEntry{ID: d.ID, Detail: d.Detail})
	}
	for _, h := range highlights {
		entry.Highlights = append(entry.Highlights, resume.JobHighlightEntry{ID: h.ID, Highlight: h.Highlight})
	}
	return entry
}

func jobDetailDTO(r database.JobDetail) resume.JobDetail {
	return resume.JobDetail{ID: r.ID, JobID: r.JobID, Detail: r.Detail}
}

func jobHighlightDTO(r database.JobHighlight) resume.JobHighlight {
	return resume.JobHighlight{ID: r.ID, JobID: r.JobID, Highlight: r.Highlight}
}

func certificationDTO(r database.Certification) resume.Certification {
	return resume.Certification{
		ID:       r.ID,
		Cert:     r.Cert,
		FullName: r.FullName,
		Time:     r.Time,
		Valid:    r.Valid,
		Progress: r.Progress,
	}
}

func competencyDTO(r database.Competency) resume.Competency {
	return resume.Competency{ID: r.ID, Competency: r.Competency}
}

func preferenceDTO(r database.Preference) resume.Preference {
	return resume.Preference{ID: r.ID, Preference: r.Preference, Value: r.Value}
}

func sideProjectDTO(r database.SideProject) resume.SideProject {
	return resume.SideProject{ID: r.ID, Title: r.Title, Tagline: r.Tagline, Link: r.Link}
}

func socialLinkDTO(r database.SocialLink) resume.SocialLink {
	return resume.SocialLink{ID: r.ID, Platform: r.Platform, Link: r.Link}
}

func skillDTO(r database.Skill) resume.Skill {
	return resume.Skill{ID: r.ID, Skill: r.Skill, Level: r.Level}
}

func userDTO(r database.User) resume.User {
	return resume.User{Username: r.Username, Disabled: r.Disabled}
}

func mapSlice[R any, D any](rows []R, fn func(R) D) []D {
	out := make([]D, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}
