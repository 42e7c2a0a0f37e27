package team

import (
	"fmt"
	"strings"
)

// BriefAnalysis is the lightweight positioning read derived from a brief
// before the team starts working. It feeds the brand-strategy context of the
// enhanced brief.
type BriefAnalysis struct {
	Industry string
	Audience string
}

// keywordEntry maps a label to its trigger keywords. The tables are ordered
// slices so analysis is deterministic for identical briefs.
type keywordEntry struct {
	label    string
	keywords []string
}

var industryTable = []keywordEntry{
	{"technology", []string{"tech", "software", "digital", "app", "platform", "ai", "ml"}},
	{"healthcare", []string{"health", "medical", "doctor", "hospital", "medicine", "wellness"}},
	{"education", []string{"education", "learning", "school", "course", "training", "skill"}},
	{"finance", []string{"finance", "banking", "investment", "money", "loan", "insurance"}},
	{"food", []string{"food", "restaurant", "cuisine", "recipe", "cooking", "meal"}},
	{"retail", []string{"retail", "shopping", "store", "product", "sale", "customer"}},
}

var audienceTable = []keywordEntry{
	{"young_professionals", []string{"professional", "career", "young", "graduate", "employee"}},
	{"families_with_children", []string{"family", "children", "kids", "parent", "mother", "father"}},
	{"seniors", []string{"senior", "elderly", "retirement", "pension", "mature"}},
	{"students", []string{"student", "college", "university", "academic", "study"}},
	{"entrepreneurs", []string{"entrepreneur", "business", "startup", "founder", "sme"}},
}

// AnalyzeBrief extracts the industry and target audience from a free-text
// brief by ordered keyword lookup.
func AnalyzeBrief(brief string) BriefAnalysis {
	lower := strings.ToLower(brief)

	analysis := BriefAnalysis{
		Industry: "general",
		Audience: "middle_class_families",
	}

	for _, entry := range industryTable {
		if containsAny(lower, entry.keywords) {
			analysis.Industry = entry.label
			break
		}
	}

	for _, entry := range audienceTable {
		if containsAny(lower, entry.keywords) {
			analysis.Audience = entry.label
			break
		}
	}

	return analysis
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// enhanceBrief wraps the original brief with Indian market context, brand
// positioning, and the collaboration workflow before it is handed to the
// orchestrator. The output is deterministic for identical inputs.
func (t *Team) enhanceBrief(req ContentRequest, analysis BriefAnalysis) string {
	var b strings.Builder

	b.WriteString("CONTENT CREATION PROJECT - INDIAN MARKET FOCUS\n\n")
	fmt.Fprintf(&b, "ORIGINAL BRIEF: %s\n\n", req.Brief)
	fmt.Fprintf(&b, "CONTENT TYPE: %s\n\n", req.ContentType)

	if req.TargetAudience != "" {
		fmt.Fprintf(&b, "TARGET AUDIENCE: %s\n\n", req.TargetAudience)
	}

	b.WriteString("BRAND STRATEGY CONTEXT:\n")
	fmt.Fprintf(&b, "- Industry: %s\n", analysis.Industry)
	fmt.Fprintf(&b, "- Audience Segment: %s\n", analysis.Audience)
	b.WriteString("- Positioning: traditional values meet modern aspirations\n")
	b.WriteString("- Trust Strategy: relationship building through transparency and social proof\n\n")

	b.WriteString("INDIAN MARKET CONTEXT:\n")
	fmt.Fprintf(&b, "- Target Regions: %s\n", strings.Join(t.regional.TargetRegions, ", "))
	fmt.Fprintf(&b, "- Primary Language: %s\n", t.regional.Languages.Primary)
	fmt.Fprintf(&b, "- Cultural Hooks: %s\n", strings.Join(t.regional.CulturalContext.Festivals, ", "))
	fmt.Fprintf(&b, "- Currency: %s\n", t.regional.CulturalContext.Currency)
	b.WriteString("- Market Segments: Metro, Tier-2, and Tier-3 cities\n\n")

	b.WriteString(`CONTENT REQUIREMENTS:
1. Use simple, accessible English (8th grade reading level)
2. Include relevant Indian examples and cultural references
3. Optimize for mobile-first consumption (80% of Indian users)
4. Consider regional variations and cultural sensitivities
5. Include appropriate call-to-actions for Indian market
6. Ensure compliance with Indian advertising guidelines

COLLABORATION WORKFLOW:
1. content_writer: Create initial content with Indian context
2. content_editor: Review for quality, culture, and compliance
3. seo_specialist: Optimize for Indian search behavior
4. brand_strategist: Ensure brand alignment and cultural fit
5. project_manager: Final review and approval

`)

	fmt.Fprintf(&b, "LLM PROVIDER: %s\n\n", strings.ToUpper(string(t.provider.Kind)))
	b.WriteString("Please start with content creation. The team will collaborate until we achieve\n")
	b.WriteString("high-quality, culturally appropriate content for the Indian market.\n")

	return b.String()
}

// socialMediaBrief expands a campaign brief with the platform deliverables
// expected for an Indian social media push.
func socialMediaBrief(campaignBrief string) string {
	return fmt.Sprintf(`SOCIAL MEDIA CAMPAIGN PROJECT - INDIAN MARKET

Brief: %s

DELIVERABLES REQUIRED:
1. Instagram posts (3-5 posts with captions and hashtags, carousel and reel scripts)
2. LinkedIn professional content for the Indian business community
3. Facebook posts for community engagement and events
4. Twitter/X threads, quick tips, and insights
5. WhatsApp Business message templates (promotions, confirmations, support)

INDIAN SOCIAL MEDIA REQUIREMENTS:
- Use trending Indian hashtags and festival tie-ins
- Optimize for peak Indian social media hours (7-9 PM IST)
- Consider regional language hashtags
- Include call-to-actions relevant to Indian users (UPI payments, WhatsApp contact)
- Account for Indian social media consumption patterns`, campaignBrief)
}

// blogBrief expands a topic into a full blog article brief.
func blogBrief(topic, targetAudience string, wordCount int) string {
	return fmt.Sprintf(`BLOG ARTICLE PROJECT - INDIAN MARKET FOCUS

Topic: %s
Target Audience: %s
Word Count: %d words

ARTICLE STRUCTURE REQUIREMENTS:
1. Compelling headline optimized for Indian search behavior
2. Meta description (150-160 characters) with Indian keywords
3. Introduction with Indian market context and statistics
4. Main content sections with clear headers (H2, H3)
5. Indian case studies and examples throughout
6. Actionable takeaways for the Indian business environment
7. Conclusion with a clear call-to-action for Indian readers

SEO OPTIMIZATION:
- Primary keyword research for the Indian market
- Local SEO considerations for Indian cities
- FAQ section addressing common Indian market questions`, topic, targetAudience, wordCount)
}

// emailBrief expands a campaign objective into an email series brief.
func emailBrief(objective, audienceSegment string) string {
	return fmt.Sprintf(`EMAIL MARKETING CAMPAIGN - INDIAN AUDIENCE

Campaign Objective: %s
Audience Segment: %s

EMAIL SERIES DELIVERABLES:
1. Welcome email series (3-5 emails)
2. Promotional campaign emails
3. Newsletter template
4. Festival/seasonal campaign emails
5. Customer retention emails

INDIAN EMAIL MARKETING CONSIDERATIONS:
- Mobile-first design (90%% of Indians check email on mobile)
- Regional festival greetings and offers
- UPI payment integration mentions and WhatsApp contact options
- Unsubscribe options in local languages`, objective, audienceSegment)
}

// competitorBrief expands competitor details into an analysis brief.
func competitorBrief(competitorInfo, analysisFocus string) string {
	return fmt.Sprintf(`COMPETITOR CONTENT ANALYSIS - INDIAN MARKET

Competitor Information: %s
Analysis Focus: %s

ANALYSIS DELIVERABLES:
1. Content strategy assessment (types, formats, frequency, engagement)
2. Cultural adaptation analysis (regional customization, festival content)
3. SEO and digital marketing assessment for the Indian market
4. Opportunities and gaps (underserved segments, content gaps)
5. Strategic recommendations (differentiation, cultural positioning)`, competitorInfo, analysisFocus)
}
