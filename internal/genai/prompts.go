package genai

import (
	"fmt"
	"strings"
)

// MatchPromptDonor and MatchPromptRequest carry just the fields the matching
// instruction template references.
type MatchPromptDonor struct {
	ID         string
	BloodGroup string
	Location   string
}

type MatchPromptRequest struct {
	ID         string
	BloodGroup string
	Location   string
	Urgency    string
}

// BuildMatchPrompt renders the fixed matching instruction template over the
// current donor and request snapshots.
func BuildMatchPrompt(donors []MatchPromptDonor, requests []MatchPromptRequest) string {
	var parts []string

	parts = append(parts, "You are an AI assistant helping to match blood donors with blood requests.")
	parts = append(parts, "\nGiven the following list of blood donors:\n")
	for _, d := range donors {
		parts = append(parts, fmt.Sprintf("- Donor ID: %s, Blood Group: %s, Location: %s", d.ID, d.BloodGroup, d.Location))
	}

	parts = append(parts, "\nAnd the following list of blood requests:\n")
	for _, r := range requests {
		parts = append(parts, fmt.Sprintf("- Request ID: %s, Blood Group: %s, Location: %s, Urgency: %s", r.ID, r.BloodGroup, r.Location, r.Urgency))
	}

	parts = append(parts, "\nFind suitable matches between donors and requesters based on blood group and location.")
	parts = append(parts, "For each match, provide a reason for the match.")
	parts = append(parts, "Return a JSON array of matches, including the donor ID, request ID, and the reason for the match.")
	parts = append(parts, `Respond with ONLY the JSON array, in the form [{"donorId": "...", "requestId": "...", "reason": "..."}].`)

	return strings.Join(parts, "\n")
}

// BuildSupportPrompt wraps a single user message in the fixed support-assistant
// persona. No transcript history is forwarded; every call stands alone.
func BuildSupportPrompt(message string) string {
	var parts []string

	parts = append(parts, `You are a friendly and helpful support assistant for "BloodLink BD", a web application designed to connect blood donors with individuals in need of blood in Bangladesh.`)
	parts = append(parts, "")
	parts = append(parts, "Your capabilities are to answer questions about the app's features and guide users on how to use the application.")
	parts = append(parts, "Do NOT provide medical advice, opinions, or any information outside the scope of how to use the BloodLink BD application.")
	parts = append(parts, "If the user asks something unrelated to BloodLink BD or its features, politely state that you can only help with questions about the BloodLink BD application.")
	parts = append(parts, "")
	parts = append(parts, "Key features of BloodLink BD that you can talk about:")
	parts = append(parts, "- User Membership: Users can sign up for membership and log in.")
	parts = append(parts, "- Donor Registration: Members can register as blood donors, providing details like their full name, blood group, location (city/area), and contact number. They can also manage their availability.")
	parts = append(parts, "- Posting Blood Requests: Members can post requests for blood, specifying the blood group needed, patient details (optional), location (hospital/area), urgency level (Urgent, Moderate, Low), and contact information.")
	parts = append(parts, "- Viewing Donors & Requests: Users can browse lists of available donors and active blood requests. These lists can be filtered by blood group and location.")
	parts = append(parts, "- AI Matching Tool: An AI-powered tool to help find potential matches between registered donors and active blood requests based on compatibility factors.")
	parts = append(parts, "- My Profile Page: Authenticated users can view their profile, see their own blood requests, and manage their donor profile.")
	parts = append(parts, "- Hospitals Information: A page listing major hospitals in Bangladesh (this is static information).")
	parts = append(parts, "- Contact Us Page: For users to send inquiries or feedback.")
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf("Based on the user's message: %s", message))
	parts = append(parts, "")
	parts = append(parts, "Provide a concise, helpful, and polite answer related to these features.")
	parts = append(parts, "If the question is vague, you can ask for clarification.")
	parts = append(parts, "Keep your responses focused on assisting the user with the BloodLink BD platform.")

	return strings.Join(parts, "\n")
}
