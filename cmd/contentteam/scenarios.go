package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

// Ready-made demo briefs for Indian businesses.
const (
	briefEduTechBlog = `EduTech Solutions is a Bangalore-based startup offering AI-powered
skill development courses for working professionals. Write a blog article about how
upskilling in AI and data science can accelerate careers in the Indian IT industry.
Include salary growth statistics, success stories from tier-2 cities, and practical
first steps for professionals with full-time jobs.`

	briefRestaurantCampaign = `Spice Route is a family restaurant in Bandra West, Mumbai,
known for authentic Kerala cuisine with a modern twist. Create a social media campaign
to attract young professionals and families for weekend dining. Highlight the weekend
Sadya special, live music evenings, and the new home delivery menu.`

	briefDiwaliEmail = `DesiCart is an online marketplace for handcrafted Indian home decor
and gifts. Plan the Diwali sale email campaign: early-bird offers for loyal customers,
gift guides by budget (under INR 500, 1000, 2500), and last-minute delivery cutoffs
for metro and tier-2 cities.`
)

type scenario struct {
	label string
	run   func(ctx context.Context, tm *team.Team) error
}

func scenarios() []scenario {
	return []scenario{
		{"Blog article: AI upskilling for IT professionals (EduTech, Bangalore)", func(ctx context.Context, tm *team.Team) error {
			result, err := tm.CreateBlogArticle(ctx, briefEduTechBlog, "young_professionals", 1500)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		}},
		{"Social media campaign: weekend dining (Spice Route, Mumbai)", func(ctx context.Context, tm *team.Team) error {
			result, err := tm.CreateSocialMediaCampaign(ctx, briefRestaurantCampaign)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		}},
		{"Email campaign: Diwali sale (DesiCart)", func(ctx context.Context, tm *team.Team) error {
			result, err := tm.CreateEmailCampaign(ctx, briefDiwaliEmail, "families_with_children")
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		}},
		{"Custom brief", runCustomBrief},
		{"Performance report", func(_ context.Context, tm *team.Team) error {
			report, err := tm.PerformanceReport()
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		}},
	}
}

const quitLabel = "Quit"

// menuLoop shows the scenario picker until the user quits or the context is
// canceled.
func menuLoop(ctx context.Context, tm *team.Team) error {
	all := scenarios()

	options := make([]huh.Option[int], 0, len(all)+1)
	for i, s := range all {
		options = append(options, huh.NewOption(s.label, i))
	}
	options = append(options, huh.NewOption(quitLabel, -1))

	for {
		if ctx.Err() != nil {
			return nil
		}

		var choice int
		if err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().
				Title("Content Team").
				Description(fmt.Sprintf("Target regions: %s", strings.Join(tm.Regional().TargetRegions, ", "))).
				Options(options...).
				Value(&choice),
		)).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		if choice < 0 {
			return nil
		}

		if err := all[choice].run(ctx, tm); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func runCustomBrief(ctx context.Context, tm *team.Team) error {
	var brief, contentType string

	if err := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Brief").
			Description("Describe the business and what content you need").
			Value(&brief),
		huh.NewSelect[string]().
			Title("Content type").
			Options(
				huh.NewOption("General", "general"),
				huh.NewOption("Blog article", "blog_article"),
				huh.NewOption("Social media campaign", "social_media_campaign"),
				huh.NewOption("Email campaign", "email_campaign"),
			).
			Value(&contentType),
	)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	result, err := tm.CreateContent(ctx, team.ContentRequest{Brief: brief, ContentType: contentType})
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}
