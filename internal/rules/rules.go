// Package rules holds the static server content: main rules, order rules and
// the chain of command. Defaults are compiled in; a yaml file can override
// any of the three texts.
package rules

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Content struct {
	MainRules      string `yaml:"main_rules"`
	OrderRules     string `yaml:"order_rules"`
	ChainOfCommand string `yaml:"chain_of_command"`
}

// Load returns the defaults, overridden by the yaml file at path when given.
// Keys absent from the file keep their default text.
func Load(path string) (Content, error) {
	content := Defaults()
	if path == "" {
		return content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, err
	}
	if err := yaml.Unmarshal(data, &content); err != nil {
		return Content{}, err
	}

	return content, nil
}

func Defaults() Content {
	return Content{
		MainRules:      mainRules,
		OrderRules:     orderRules,
		ChainOfCommand: chainOfCommand,
	}
}

const mainRules = `Welcome to CLA Designs!

Please follow these rules to keep our community safe, friendly, and fun for everyone:

1. **Be Respectful** — Treat all members kindly. No harassment, hate speech, or discrimination.
2. **No Spamming** — Avoid excessive messages, emojis, images, or disruptive behavior.
3. **No Self-Promotion** — Advertising, server invites, or promoting personal projects without permission is not allowed.
4. **Keep It Safe For Work** — No NSFW content, explicit language, or graphic media.
5. **Follow the Platform Terms of Service** — Any illegal activity or content is strictly forbidden.
6. **Respect Staff Decisions** — Moderators and admins work to keep the community safe. Listen to their instructions.
7. **English Only in Main Channels**
8. **No Impersonation**

**Point System**
Mute - 2 points
Impersonation - 7 points
Kick - 10 points

Moderators and admins have the right to enforce these rules as needed and may add additional points if needed. Repeated violations may result in temporary or permanent bans.

**Point System:** Rule violations result in points being added to your account. Reaching 16 points results in an automatic ban.`

const orderRules = `Design Server Rules & Pricing

**Pricing**

Liveries
- Basic Livery - 30 Robux
- Premium Livery - 60 Robux

Avatars
- Basic Avatar - 30 Robux
- Premium Avatar - 60 Robux

ELS (Emergency Lighting Systems)
- Standard ELS - 50 Robux

(Prices are per project. Complex or custom work may be quoted separately.)

**Rules**
1. No Cancellations or Refunds — once you place an order and payment is made, there are no refunds under any circumstances.
2. Respect Staff & Designers — follow instructions from the team.
3. Provide Clear References — provide any logos, images, or examples to help us deliver exactly what you want.
4. Payment First Policy — work begins only after payment is confirmed.
5. No Free Work or "Testing" Requests.
6. Completed Work is Final — minor adjustments are allowed, full redesigns require a new order.
7. No Reselling or Claiming Work as Your Own.
8. Orders via the Order System Only.
9. Allow Reasonable Time for Completion — delivery times vary depending on project complexity and queue size.
10. English Only in Main Channels.`

const chainOfCommand = `Chain of Command — CLA Designs

**Leadership**
Owner / Founder — ultimate authority; oversees all departments.
Co-Owner(s) / Directors — second-in-command; handle escalated issues.

**Development Team**
Head of Development — leads the development team.
Senior Developers — advanced features and bots; train juniors.
Junior Developers — smaller tasks and project support.

**Design Team**
Head of Design — sets design standards, coordinates client work.
Senior Designers — client projects; mentor juniors, review designs.
Junior Designers — basic or supportive design tasks.

**Staff Team**
Head Admin — leads the staff team, manages moderators.
Admin — moderation, disputes, server operations.
Moderator — day-to-day moderation, warns rule-breakers.
Trial Moderator / Helper — entry-level staff role.`
