package engine

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/analyze_system.txt
	analyzeSystemPrompt string
	//go:embed prompts/analyze_user.txt
	analyzeUserPrompt string
	//go:embed prompts/candidate_chat_system.txt
	candidateChatSystemPrompt string
	//go:embed prompts/candidate_chat_user.txt
	candidateChatUserPrompt string
	//go:embed prompts/hr_chat_system.txt
	hrChatSystemPrompt string
	//go:embed prompts/hr_chat_user.txt
	hrChatUserPrompt string
)

func buildAnalyzeMessages(resumeText, jobDescription string) []Message {
	user := strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
	).Replace(analyzeUserPrompt)

	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(analyzeSystemPrompt)},
		{Role: RoleUser, Content: user},
	}
}

func buildCandidateChatMessages(profileBlock, message string) []Message {
	user := strings.NewReplacer(
		"{{PROFILE}}", profileBlock,
		"{{MESSAGE}}", message,
	).Replace(candidateChatUserPrompt)

	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(candidateChatSystemPrompt)},
		{Role: RoleUser, Content: user},
	}
}

func buildHRChatMessages(candidatesJSON, message string) []Message {
	user := strings.NewReplacer(
		"{{CANDIDATES}}", candidatesJSON,
		"{{MESSAGE}}", message,
	).Replace(hrChatUserPrompt)

	return []Message{
		{Role: RoleSystem, Content: strings.TrimSpace(hrChatSystemPrompt)},
		{Role: RoleUser, Content: user},
	}
}
