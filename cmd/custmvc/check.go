package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/acksell/custmvc/dynamodb/ddbrecord"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// requiredActions are the DynamoDB calls the web server makes.
var requiredActions = []string{
	"dynamodb:Scan",
	"dynamodb:PutItem",
	"dynamodb:DeleteItem",
}

// runCheck verifies that the AWS caller may use the customers table.
func runCheck(args []string, out io.Writer) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("check", flag.ExitOnError)
	tableName := fs.String("table", cfg.Table, "customers table name")
	region := fs.String("region", cfg.AWS.Region, "AWS region")
	fs.Usage = func() {
		fmt.Println(`custmvc check - Check DynamoDB permissions of the current AWS identity

Usage:
  custmvc check [flags]

Flags:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	var loadOpts []func(*awsconfig.LoadOptions) error
	if *region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(*region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	identity, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("resolving AWS identity: %w", err)
	}
	principal, partition, err := principalARN(aws.ToString(identity.Arn))
	if err != nil {
		return err
	}
	resource := tableARN(partition, awsCfg.Region, aws.ToString(identity.Account), ddbrecord.CustomersTable(*tableName).Name)
	log.New(os.Stderr, "", log.LstdFlags).Printf("simulating %s on %s", principal, resource)

	sim, err := iam.NewFromConfig(awsCfg).SimulatePrincipalPolicy(ctx, &iam.SimulatePrincipalPolicyInput{
		PolicySourceArn: aws.String(principal),
		ActionNames:     requiredActions,
		ResourceArns:    []string{resource},
	})
	if err != nil {
		return fmt.Errorf("simulating policy: %w", err)
	}

	if denied := renderDecisions(out, sim.EvaluationResults); denied > 0 {
		return fmt.Errorf("%d of %d actions denied", denied, len(requiredActions))
	}
	return nil
}

// principalARN maps a caller ARN to the IAM principal whose policies apply
// and returns it with the caller's partition. Assumed-role sessions map to
// their role; users and roles pass through.
func principalARN(callerARN string) (principal, partition string, err error) {
	parts := strings.SplitN(callerARN, ":", 6)
	if len(parts) != 6 || parts[0] != "arn" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid caller ARN %q", callerARN)
	}
	partition, service, account, resource := parts[1], parts[2], parts[4], parts[5]

	switch {
	case service == "iam":
		return callerARN, partition, nil
	case service == "sts" && strings.HasPrefix(resource, "assumed-role/"):
		segments := strings.Split(strings.TrimPrefix(resource, "assumed-role/"), "/")
		if len(segments) < 2 || segments[0] == "" {
			return "", "", fmt.Errorf("invalid assumed-role ARN %q", callerARN)
		}
		return fmt.Sprintf("arn:%s:iam::%s:role/%s", partition, account, segments[0]), partition, nil
	default:
		return "", "", fmt.Errorf("cannot simulate policies for %q", callerARN)
	}
}

func tableARN(partition, region, account, name string) string {
	return fmt.Sprintf("arn:%s:dynamodb:%s:%s:table/%s", partition, region, account, name)
}

// renderDecisions writes one row per action and returns how many were denied.
func renderDecisions(out io.Writer, results []iamtypes.EvaluationResult) int {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ACTION", "DECISION"})

	denied := 0
	for _, r := range results {
		decision := text.FgGreen.Sprint(r.EvalDecision)
		if r.EvalDecision != iamtypes.PolicyEvaluationDecisionTypeAllowed {
			denied++
			decision = text.FgRed.Sprint(r.EvalDecision)
		}
		t.AppendRow(table.Row{aws.ToString(r.EvalActionName), decision})
	}
	t.Render()
	return denied
}
