package usecase

import (
	"fmt"
	"strings"
)

// Knowledge holds the business facts the assistant is allowed to quote.
type Knowledge struct {
	Company  string
	Hours    string
	Location string
	Services []string
	Email    string
	Phone    string
	Focus    string
}

var LoopsKnowledge = Knowledge{
	Company:  "Loops Integrated",
	Hours:    "Monday to Friday, 9 AM to 6 PM",
	Location: "Colombo 03, Sri Lanka",
	Services: []string{
		"Digital marketing",
		"creative strategy",
		"performance marketing",
		"content creation",
	},
	Email: "hello@loops.lk",
	Phone: "+94 77 123 4567",
	Focus: "We specialize in helping businesses grow through innovative digital solutions",
}

const OffTopicRedirect = "I specialize in Loops Integrated services. I'd be happy to connect you with our team who can assist with that!"

func (k Knowledge) Snippet() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("%s Company Information:\n", k.Company))
	b.WriteString(fmt.Sprintf("- Working Hours: %s\n", k.Hours))
	b.WriteString(fmt.Sprintf("- Location: %s\n", k.Location))
	b.WriteString(fmt.Sprintf("- Services: %s\n", strings.Join(k.Services, ", ")))
	b.WriteString(fmt.Sprintf("- Contact: %s / %s\n", k.Email, k.Phone))
	b.WriteString(fmt.Sprintf("- %s\n", k.Focus))
	return b.String()
}

// Instruction is the system message: persona, knowledge and response rules.
func (k Knowledge) Instruction() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf(
		"You are %s's digital sales representative. You must respond in the same language as the user, either English or Sinhala.\n\n",
		k.Company,
	))
	b.WriteString(fmt.Sprintf(
		"You are friendly, professional, and helpful. If a user asks about %s's services, provide accurate information from the knowledge base below.\n\n",
		k.Company,
	))
	b.WriteString(
		"If a query is unrelated to our services, politely redirect by saying you specialize in digital marketing services " +
			"and offer to connect them with the human team. DO NOT automatically collect contact info - just politely redirect in your response.\n\n",
	)
	b.WriteString("COMPANY KNOWLEDGE BASE:\n")
	b.WriteString(k.Snippet())
	b.WriteString("\nRESPONSE GUIDELINES:\n")
	b.WriteString("- Match the user's language exactly\n")
	b.WriteString("- Keep responses concise (2-3 sentences)\n")
	b.WriteString(fmt.Sprintf("- For unrelated queries: %q\n", OffTopicRedirect))
	b.WriteString("- Never automatically collect info - just offer to connect")
	return b.String()
}
